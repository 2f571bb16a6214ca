package model

type SupportTicket struct {
	ID          string `gorm:"column:id;primaryKey"`
	Subject     string `gorm:"column:subject;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null"`
	Priority    string `gorm:"column:priority;type:text;not null"`
	Category    string `gorm:"column:category;type:text;not null"`
	UserEmail   string `gorm:"column:user_email;type:text;not null"`
	Attachments string `gorm:"column:attachments;type:text"`
	Status      string `gorm:"column:status;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}
