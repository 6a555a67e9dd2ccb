package postgres

import (
	"fmt"
	"testing"
	"time"

	"recall/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var cardColumns = []string{"id", "deck", "kind", "question", "answer", "hint", "image", "created_at"}

func TestCardRepo_LoadCards(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(cardColumns).
		AddRow("sp-1", "spanish", "basic", "hola", "hello", nil, nil, createdAt).
		AddRow("sp-2", "spanish", "cloze", "the capital is {{...}}", "madrid", "starts with m", "capitals.png", createdAt)

	mock.ExpectQuery("SELECT id, deck, kind, question, answer, hint, image, created_at FROM cards").
		WillReturnRows(rows)

	cards, err := repo.LoadCards()

	assert.NoError(t, err)
	assert.Equal(t, []domain.Card{
		{ID: "sp-1", Deck: "spanish", Kind: domain.KindBasic, Question: "hola", Answer: "hello", CreatedAt: createdAt},
		{ID: "sp-2", Deck: "spanish", Kind: domain.KindCloze, Question: "the capital is {{...}}", Answer: "madrid", Hint: "starts with m", Image: "capitals.png", CreatedAt: createdAt},
	}, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_LoadCardsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)

	mock.ExpectQuery("SELECT id, deck, kind, question, answer, hint, image, created_at FROM cards").
		WillReturnRows(sqlmock.NewRows(cardColumns))

	cards, err := repo.LoadCards()

	assert.NoError(t, err)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_LoadCardsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)

	mock.ExpectQuery("SELECT id, deck, kind").WillReturnError(fmt.Errorf("db down"))

	_, err = repo.LoadCards()

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_SaveCard(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	card := domain.Card{
		ID:        "sp-1",
		Deck:      "spanish",
		Kind:      domain.KindBasic,
		Question:  "hola",
		Answer:    "hello",
		CreatedAt: createdAt,
	}

	mock.ExpectExec("INSERT INTO cards").
		WithArgs("sp-1", "spanish", "basic", "hola", "hello",
			nullString(""), nullString(""), createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.SaveCard(card))
	assert.NoError(t, mock.ExpectationsWereMet())
}
