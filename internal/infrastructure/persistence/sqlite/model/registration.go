package model

type Registration struct {
	ID             string  `gorm:"column:id;primaryKey"`
	EventID        string  `gorm:"column:event_id;type:text;not null;index"`
	CompetitorName string  `gorm:"column:competitor_name;type:text;not null"`
	Email          string  `gorm:"column:email;type:text;not null"`
	Phone          string  `gorm:"column:phone;type:text;not null"`
	VehicleInfo    string  `gorm:"column:vehicle_info;type:text;not null"`
	ClassID        string  `gorm:"column:class_id;type:text;not null"`
	TeamName       *string `gorm:"column:team_name;type:text"`
	Status         string  `gorm:"column:status;type:text;not null;index"`
	CreatedAt      string  `gorm:"column:created_at;type:text;not null"`
}

func (Registration) TableName() string {
	return "registrations"
}
