package model

type Payment struct {
	ID             string  `gorm:"column:id;primaryKey"`
	RegistrationID string  `gorm:"column:registration_id;type:text;not null;index"`
	Amount         float64 `gorm:"column:amount;not null"`
	Currency       string  `gorm:"column:currency;type:text;not null"`
	PaymentMethod  string  `gorm:"column:payment_method;type:text;not null"`
	Metadata       string  `gorm:"column:metadata;type:text"`
	Status         string  `gorm:"column:status;type:text;not null;index"`
	ProcessedAt    string  `gorm:"column:processed_at;type:text;not null"`
}

func (Payment) TableName() string {
	return "payments"
}
