package service_test

import (
	"context"

	"liveboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Snapshot(ctx context.Context) (*model.Board, error) {
	args := m.Called(ctx)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

type MockCardRepository struct {
	mock.Mock
	// stored is the row Update hands to the merge callback.
	stored *model.Card
}

func (m *MockCardRepository) GetOwnerID(ctx context.Context, id int64) (*int64, error) {
	args := m.Called(ctx, id)
	owner := args.Get(0)
	if owner == nil {
		return nil, args.Error(1)
	}
	return owner.(*int64), args.Error(1)
}

func (m *MockCardRepository) CreateAtEnd(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, id int64, apply func(card *model.Card) error) (*model.Card, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	card := *m.stored
	if err := apply(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBoardChanged(ctx context.Context) {
	m.Called(ctx)
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }
