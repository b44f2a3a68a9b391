package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liveboard/internal/model"
)

type CardRepository struct {
	db  *gorm.DB
	now func() time.Time
}

type CardRepositoryInterface interface {
	GetOwnerID(ctx context.Context, id int64) (*int64, error)
	CreateAtEnd(ctx context.Context, card *model.Card) error
	Update(ctx context.Context, id int64, apply func(card *model.Card) error) (*model.Card, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db, now: time.Now}
}

// GetOwnerID reads only the owner of a card. A nil owner means the card is unowned.
func (r *CardRepository) GetOwnerID(ctx context.Context, id int64) (*int64, error) {
	var card model.Card
	result := r.db.WithContext(ctx).Select("id", "owner_id").First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return card.OwnerID, nil
}

// CreateAtEnd inserts the card after the last card of its column.
// The column row is locked for the duration of the insert, so concurrent
// appends to the same column get distinct order indexes.
func (r *CardRepository) CreateAtEnd(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column model.Column
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&column, "id = ?", card.ColumnID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		if err != nil {
			return err
		}

		var next struct {
			Next int
		}
		if err := tx.Model(&model.Card{}).
			Select("COALESCE(MAX(order_index) + 1, 0) AS next").
			Where("column_id = ?", card.ColumnID).
			Scan(&next).Error; err != nil {
			return err
		}

		card.OrderIndex = next.Next
		return tx.Create(card).Error
	})
}

// Update loads the card under a row lock, lets apply merge the new field
// values into it and writes the result back with a fresh updated_at.
func (r *CardRepository) Update(ctx context.Context, id int64, apply func(card *model.Card) error) (*model.Card, error) {
	var card model.Card

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&card, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		if err != nil {
			return err
		}

		if err := apply(&card); err != nil {
			return err
		}
		card.UpdatedAt = r.now()

		result := tx.Model(&model.Card{}).Where("id = ?", id).Updates(map[string]interface{}{
			"column_id":   card.ColumnID,
			"title":       card.Title,
			"description": card.Description,
			"order_index": card.OrderIndex,
			"updated_at":  card.UpdatedAt,
		})
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrColumnNotFound
		}
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// Delete removes a card by its ID and reports whether a row was removed
func (r *CardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
