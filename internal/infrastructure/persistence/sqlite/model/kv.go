package model

// KV backs the SQLite cache adapter. ExpiresAt is RFC3339; empty means
// no expiry.
type KV struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	ExpiresAt string `gorm:"column:expires_at;type:text"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (KV) TableName() string {
	return "kv_cache"
}
