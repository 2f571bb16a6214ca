package model

type CheckIn struct {
	ID             string `gorm:"column:id;primaryKey"`
	EventID        string `gorm:"column:event_id;type:text;not null;index"`
	RegistrationID string `gorm:"column:registration_id;type:text;not null"`
	CheckedInAt    string `gorm:"column:checked_in_at;type:text;not null"`
}

func (CheckIn) TableName() string {
	return "event_check_ins"
}
