package postgres

import (
	"database/sql"
	"fmt"
	"sort"

	"recall/internal/domain"
)

// TransferRepo implements repository.TransferRepository
type TransferRepo struct {
	db *sql.DB
}

// NewTransferRepo creates a new transfer repository
func NewTransferRepo(db *sql.DB) *TransferRepo {
	return &TransferRepo{db: db}
}

// ImportAll writes the whole payload in one transaction. With replace set,
// existing cards and progress are dropped first; otherwise rows are
// upserted by ID.
func (r *TransferRepo) ImportAll(cards []domain.Card, progressByID map[string]domain.Progress, replace bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.Exec(`DELETE FROM progress`); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM cards`); err != nil {
			return fmt.Errorf("clear cards: %w", err)
		}
	}

	cardQuery := `
		INSERT INTO cards (id, deck, kind, question, answer, hint, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET deck = $2, kind = $3, question = $4, answer = $5, hint = $6, image = $7, created_at = $8
	`
	for _, c := range cards {
		if _, err := tx.Exec(cardQuery,
			c.ID, c.Deck, string(c.Kind), c.Question, c.Answer,
			nullString(c.Hint), nullString(c.Image), c.CreatedAt,
		); err != nil {
			return fmt.Errorf("import card %s: %w", c.ID, err)
		}
	}

	progressQuery := `
		INSERT INTO progress (card_id, ease, interval, reps, lapses, due, last_reviewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (card_id)
		DO UPDATE SET ease = $2, interval = $3, reps = $4, lapses = $5, due = $6, last_reviewed = $7
	`
	ids := make([]string, 0, len(progressByID))
	for id := range progressByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := progressByID[id]
		if _, err := tx.Exec(progressQuery,
			p.CardID, p.Ease, p.Interval, p.Reps, p.Lapses, p.Due, nullTime(p.LastReviewed),
		); err != nil {
			return fmt.Errorf("import progress %s: %w", p.CardID, err)
		}
	}

	return tx.Commit()
}
