package repository_test

import (
	"context"
	"testing"
	"time"

	"liveboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_Snapshot_OrdersColumnsAndCards(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "columns" ORDER BY order_index ASC,id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "order_index"}).
			AddRow(1, "To Do", 0).
			AddRow(2, "Done", 1))
	mock.ExpectQuery(`SELECT \* FROM "cards" ORDER BY order_index ASC,id ASC`).
		WillReturnRows(sqlmock.NewRows(cardColumns).
			AddRow(4, 1, "a", nil, 0, 1, now, now).
			AddRow(9, 2, "b", "desc", 0, nil, now, now))
	mock.ExpectCommit()

	// Act
	board, err := boardRepo.Snapshot(context.Background())

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, board)
	require.Len(t, board.Columns, 2)
	require.Len(t, board.Cards, 2)
	assert.Equal(t, "To Do", board.Columns[0].Title)
	assert.Equal(t, int64(4), board.Cards[0].ID)
	assert.Nil(t, board.Cards[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Snapshot_EmptyBoard(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "columns"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "order_index"}))
	mock.ExpectQuery(`SELECT \* FROM "cards"`).
		WillReturnRows(sqlmock.NewRows(cardColumns))
	mock.ExpectCommit()

	board, err := boardRepo.Snapshot(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, board.Columns)
	assert.NotNil(t, board.Cards)
	assert.Empty(t, board.Cards)
}
