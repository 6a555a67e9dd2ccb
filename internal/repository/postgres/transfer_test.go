package postgres

import (
	"fmt"
	"testing"
	"time"

	"recall/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTransferRepo_ImportAllReplace(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTransferRepo(db)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	cards := []domain.Card{
		{ID: "sp-1", Deck: "spanish", Kind: domain.KindBasic, Question: "hola", Answer: "hello", CreatedAt: createdAt},
	}
	progress := map[string]domain.Progress{
		"sp-1": {CardID: "sp-1", Ease: 2.5, Interval: 6, Reps: 2, Due: due},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM progress").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM cards").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO cards").
		WithArgs("sp-1", "spanish", "basic", "hola", "hello", nullString(""), nullString(""), createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO progress").
		WithArgs("sp-1", 2.5, 6, 2, 0, due, nullTime(nil)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.ImportAll(cards, progress, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_ImportAllMergeSkipsDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTransferRepo(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, repo.ImportAll(nil, nil, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_ImportAllRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTransferRepo(db)
	cards := []domain.Card{
		{ID: "sp-1", Deck: "spanish", Kind: domain.KindBasic, Question: "hola", Answer: "hello"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO cards").WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	err = repo.ImportAll(cards, nil, false)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
