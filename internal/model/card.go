package model

import (
	"time"
)

type Card struct {
	ID          int64     `gorm:"primaryKey"`
	ColumnID    int64     `gorm:"column:column_id;not null;index"`
	Title       string    `gorm:"not null"`
	Description *string
	OrderIndex  int       `gorm:"column:order_index;not null"`
	OwnerID     *int64    `gorm:"column:owner_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// CardPatch is a partial card update. Unset fields keep their persisted value.
type CardPatch struct {
	ColumnID    Nullable[int64]
	Title       Nullable[string]
	Description Nullable[string]
	OrderIndex  Nullable[int]
}

// Empty reports whether the patch carries no recognized field at all.
func (p CardPatch) Empty() bool {
	return !p.ColumnID.Specified() && !p.Title.Specified() &&
		!p.Description.Specified() && !p.OrderIndex.Specified()
}

// Apply merges the patch into card. Callers validate the patch first.
func (p CardPatch) Apply(card *Card) {
	if v, ok := p.ColumnID.Get(); ok {
		card.ColumnID = v
	}
	if v, ok := p.Title.Get(); ok {
		card.Title = v
	}
	if p.Description.Specified() {
		card.Description = p.Description.Ptr()
	}
	if v, ok := p.OrderIndex.Get(); ok {
		card.OrderIndex = v
	}
}
