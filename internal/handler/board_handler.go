package handler

import (
	"context"
	"net/http"
	"strconv"

	"liveboard/internal/auth"
	"liveboard/internal/middleware"
	"liveboard/internal/model"
	"liveboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BoardService interface {
	GetBoard(ctx context.Context) (*model.Board, error)
	CreateCard(ctx context.Context, caller auth.Identity, input service.CreateCardInput) (*model.Card, error)
	UpdateCard(ctx context.Context, caller auth.Identity, id int64, patch model.CardPatch) (*model.Card, error)
	DeleteCard(ctx context.Context, caller auth.Identity, id int64) error
}

type BoardHandler struct {
	service BoardService
	logger  *zap.Logger
}

func NewBoardHandler(service BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{service: service, logger: logger}
}

type CreateCardRequest struct {
	ColumnID    int64   `json:"columnId" binding:"required"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateCardRequest distinguishes an absent key from an explicit null.
type UpdateCardRequest struct {
	ColumnID    model.Nullable[int64]  `json:"columnId" swaggertype:"integer"`
	Title       model.Nullable[string] `json:"title" swaggertype:"string"`
	Description model.Nullable[string] `json:"description" swaggertype:"string"`
	OrderIndex  model.Nullable[int]    `json:"orderIndex" swaggertype:"integer"`
}

func (r UpdateCardRequest) patch() model.CardPatch {
	return model.CardPatch{
		ColumnID:    r.ColumnID,
		Title:       r.Title,
		Description: r.Description,
		OrderIndex:  r.OrderIndex,
	}
}

// GetBoard godoc
// @Summary Full board: all columns and all cards
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BoardResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.service.GetBoard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// CreateCard godoc
// @Summary Create a card at the end of a column
// @Tags Cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCardRequest true "Card"
// @Success 201 {object} CardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/cards [post]
func (h *BoardHandler) CreateCard(c *gin.Context) {
	caller, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.service.CreateCard(c.Request.Context(), caller, service.CreateCardInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(card))
}

// UpdateCard godoc
// @Summary Partially update a card
// @Description Absent fields are kept. "description": null clears the description.
// @Tags Cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardRequest true "Fields to change"
// @Success 200 {object} CardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id} [patch]
func (h *BoardHandler) UpdateCard(c *gin.Context) {
	caller, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.service.UpdateCard(c.Request.Context(), caller, id, req.patch())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

// DeleteCard godoc
// @Summary Delete a card
// @Tags Cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id} [delete]
func (h *BoardHandler) DeleteCard(c *gin.Context) {
	caller, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCard(c.Request.Context(), caller, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return 0, false
	}
	return id, true
}
