package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"liveboard/internal/auth"
	"liveboard/internal/model"
	"liveboard/internal/repository"

	"go.uber.org/zap"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Notifier is told about every committed board mutation.
type Notifier interface {
	NotifyBoardChanged(ctx context.Context)
}

type CreateCardInput struct {
	ColumnID    int64
	Title       string
	Description *string
}

type BoardService struct {
	board    repository.BoardRepositoryInterface
	cards    repository.CardRepositoryInterface
	notifier Notifier
	logger   *zap.SugaredLogger
}

func NewBoardService(
	board repository.BoardRepositoryInterface,
	cards repository.CardRepositoryInterface,
	notifier Notifier,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		board:    board,
		cards:    cards,
		notifier: notifier,
		logger:   logger.Sugar(),
	}
}

// GetBoard returns every column and every card. The board is shared, so the
// caller's identity does not filter anything.
func (s *BoardService) GetBoard(ctx context.Context) (*model.Board, error) {
	board, err := s.board.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return board, nil
}

func (s *BoardService) CreateCard(ctx context.Context, caller auth.Identity, input CreateCardInput) (*model.Card, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	ownerID := caller.ID
	card := &model.Card{
		ColumnID:    input.ColumnID,
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     &ownerID,
	}

	if err := s.cards.CreateAtEnd(ctx, card); err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			return nil, fmt.Errorf("%w: column %d does not exist", ErrValidation, input.ColumnID)
		}
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.logger.Infow("Card created", "card_id", card.ID, "column_id", card.ColumnID, "owner_id", caller.ID)
	s.notifier.NotifyBoardChanged(ctx)
	return card, nil
}

func (s *BoardService) UpdateCard(ctx context.Context, caller auth.Identity, id int64, patch model.CardPatch) (*model.Card, error) {
	if err := ValidateCardPatch(patch); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	card, err := s.cards.Update(ctx, id, func(card *model.Card) error {
		patch.Apply(card)
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrCardNotFound):
		return nil, fmt.Errorf("%w: card %d", ErrNotFound, id)
	case errors.Is(err, repository.ErrColumnNotFound):
		return nil, fmt.Errorf("%w: target column does not exist", ErrValidation)
	case err != nil:
		return nil, fmt.Errorf("update card: %w", err)
	}

	s.logger.Infow("Card updated", "card_id", id, "by", caller.ID)
	s.notifier.NotifyBoardChanged(ctx)
	return card, nil
}

func (s *BoardService) DeleteCard(ctx context.Context, caller auth.Identity, id int64) error {
	if err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	deleted, err := s.cards.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: card %d", ErrNotFound, id)
	}

	s.logger.Infow("Card deleted", "card_id", id, "by", caller.ID)
	s.notifier.NotifyBoardChanged(ctx)
	return nil
}

// CanMutate reports whether caller may edit or delete the card. A missing or
// unowned card yields false for non-admins. Ownership is read from the store
// on every call.
func (s *BoardService) CanMutate(ctx context.Context, cardID int64, caller auth.Identity) (bool, error) {
	err := s.authorize(ctx, caller, cardID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// authorize separates "no such card" from "not yours" so callers can answer
// 404 and 403 respectively. Admins skip the lookup; a missing card then
// surfaces from the mutation itself.
func (s *BoardService) authorize(ctx context.Context, caller auth.Identity, cardID int64) error {
	if caller.IsAdmin() {
		return nil
	}

	ownerID, err := s.cards.GetOwnerID(ctx, cardID)
	if errors.Is(err, repository.ErrCardNotFound) {
		return fmt.Errorf("%w: card %d", ErrNotFound, cardID)
	}
	if err != nil {
		return fmt.Errorf("load card owner: %w", err)
	}

	if ownerID == nil || *ownerID != caller.ID {
		return fmt.Errorf("%w: card %d belongs to another user", ErrForbidden, cardID)
	}
	return nil
}

// ValidateCardPatch rejects empty patches, nulls on non-nullable fields and
// out-of-range values.
func ValidateCardPatch(patch model.CardPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: at least one field must be provided", ErrValidation)
	}
	if patch.ColumnID.IsNull() || patch.Title.IsNull() || patch.OrderIndex.IsNull() {
		return fmt.Errorf("%w: only description may be null", ErrValidation)
	}
	if title, ok := patch.Title.Get(); ok {
		if err := validateTitle(title); err != nil {
			return err
		}
	}
	if description, ok := patch.Description.Get(); ok {
		if err := validateDescription(description); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 || n > MaxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrValidation, MaxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, MaxDescriptionLength)
	}
	return nil
}
