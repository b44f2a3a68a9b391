package repository

import (
	"context"
	"database/sql"

	"liveboard/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Snapshot(ctx context.Context) (*model.Board, error)
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Snapshot loads all columns and all cards inside one read-only transaction,
// so both lists come from the same committed state.
func (r *BoardRepository) Snapshot(ctx context.Context) (*model.Board, error) {
	board := &model.Board{Columns: []model.Column{}, Cards: []model.Card{}}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("order_index ASC").Order("id ASC").Find(&board.Columns).Error; err != nil {
			return err
		}
		return tx.Order("order_index ASC").Order("id ASC").Find(&board.Cards).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}

	return board, nil
}
