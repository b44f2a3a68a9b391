package handler_test

import (
	"context"

	"liveboard/internal/auth"
	"liveboard/internal/model"
	"liveboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*service.AuthResult), args.Error(1)
}

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) GetBoard(ctx context.Context) (*model.Board, error) {
	args := m.Called(ctx)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardService) CreateCard(ctx context.Context, caller auth.Identity, input service.CreateCardInput) (*model.Card, error) {
	args := m.Called(ctx, caller, input)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockBoardService) UpdateCard(ctx context.Context, caller auth.Identity, id int64, patch model.CardPatch) (*model.Card, error) {
	args := m.Called(ctx, caller, id, patch)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockBoardService) DeleteCard(ctx context.Context, caller auth.Identity, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}
