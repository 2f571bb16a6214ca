package model

type Event struct {
	ID             string  `gorm:"column:id;primaryKey"`
	Name           string  `gorm:"column:name;type:text;not null"`
	EventType      string  `gorm:"column:event_type;type:text;not null;index"`
	StartDate      string  `gorm:"column:start_date;type:text;not null"`
	EndDate        string  `gorm:"column:end_date;type:text;not null"`
	Location       string  `gorm:"column:location;type:text;not null"`
	VenueName      string  `gorm:"column:venue_name;type:text;not null"`
	MaxCompetitors int     `gorm:"column:max_competitors;not null"`
	EarlyBirdPrice float64 `gorm:"column:early_bird_price;not null"`
	RegularPrice   float64 `gorm:"column:regular_price;not null"`
	Description    string  `gorm:"column:description;type:text"`
	Status         string  `gorm:"column:status;type:text;not null;index"`
	CreatedAt      string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string  `gorm:"column:updated_at;type:text;not null"`
}

func (Event) TableName() string {
	return "events"
}
