package handler

import (
	"liveboard/internal/auth"
	"liveboard/internal/model"
)

// timestampLayout is RFC 3339 with a fixed-width millisecond part.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ColumnResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"orderIndex"`
}

type CardResponse struct {
	ID          int64   `json:"id"`
	ColumnID    int64   `json:"columnId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"orderIndex"`
	OwnerID     *int64  `json:"ownerId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type BoardResponse struct {
	Columns []ColumnResponse `json:"columns"`
	Cards   []CardResponse   `json:"cards"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toUserResponse(identity auth.Identity) UserResponse {
	return UserResponse{ID: identity.ID, Email: identity.Email, Role: identity.Role}
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		OrderIndex:  card.OrderIndex,
		OwnerID:     card.OwnerID,
		CreatedAt:   card.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   card.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func toBoardResponse(board *model.Board) BoardResponse {
	response := BoardResponse{
		Columns: make([]ColumnResponse, len(board.Columns)),
		Cards:   make([]CardResponse, len(board.Cards)),
	}
	for i, column := range board.Columns {
		response.Columns[i] = ColumnResponse{ID: column.ID, Title: column.Title, OrderIndex: column.OrderIndex}
	}
	for i := range board.Cards {
		response.Cards[i] = toCardResponse(&board.Cards[i])
	}
	return response
}
