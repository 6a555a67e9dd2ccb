package postgres

import (
	"fmt"
	"testing"
	"time"

	"recall/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var progressColumns = []string{"card_id", "ease", "interval", "reps", "lapses", "due", "last_reviewed"}

func TestProgressRepo_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)
	due := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	reviewed := due.AddDate(0, 0, -6)

	rows := sqlmock.NewRows(progressColumns).
		AddRow("sp-1", 2.5, 6, 2, 0, due, reviewed).
		AddRow("sp-2", 2.3, 3, 0, 1, due, nil)

	mock.ExpectQuery("SELECT card_id, ease, interval, reps, lapses, due, last_reviewed FROM progress").
		WillReturnRows(rows)

	progress, err := repo.Load()

	assert.NoError(t, err)
	assert.Len(t, progress, 2)

	p1 := progress["sp-1"]
	assert.Equal(t, 2.5, p1.Ease)
	assert.Equal(t, 6, p1.Interval)
	assert.Equal(t, 2, p1.Reps)
	if assert.NotNil(t, p1.LastReviewed) {
		assert.Equal(t, reviewed, *p1.LastReviewed)
	}

	p2 := progress["sp-2"]
	assert.Equal(t, 1, p2.Lapses)
	assert.Nil(t, p2.LastReviewed, "never-reviewed field stays nil")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_LoadScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	rows := sqlmock.NewRows(progressColumns).
		AddRow("sp-1", "not-a-number", 6, 2, 0, time.Now(), nil)

	mock.ExpectQuery("SELECT card_id, ease").WillReturnRows(rows)

	_, err = repo.Load()
	assert.Error(t, err)
}

func TestProgressRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)
	due := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	reviewed := due.AddDate(0, 0, -6)

	p := domain.Progress{
		CardID:       "sp-1",
		Ease:         2.5,
		Interval:     6,
		Reps:         2,
		Lapses:       0,
		Due:          due,
		LastReviewed: &reviewed,
	}

	mock.ExpectExec("INSERT INTO progress").
		WithArgs("sp-1", 2.5, 6, 2, 0, due, nullTime(&reviewed)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Save("sp-1", p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	mock.ExpectExec("INSERT INTO progress").WillReturnError(fmt.Errorf("db down"))

	err = repo.Save("sp-1", domain.Progress{CardID: "sp-1", Ease: 2.5})
	assert.Error(t, err)
}
