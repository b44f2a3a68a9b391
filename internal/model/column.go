package model

// Column is a static grouping bucket. Columns are seeded, never edited through the API.
type Column struct {
	ID         int64  `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	OrderIndex int    `gorm:"column:order_index;not null"`
}
