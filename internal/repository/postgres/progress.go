package postgres

import (
	"database/sql"
	"time"

	"recall/internal/domain"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Load returns all progress records keyed by card ID
func (r *ProgressRepo) Load() (map[string]domain.Progress, error) {
	query := `
		SELECT card_id, ease, interval, reps, lapses, due, last_reviewed
		FROM progress
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[string]domain.Progress)
	for rows.Next() {
		var p domain.Progress
		var lastReviewed sql.NullTime
		if err := rows.Scan(&p.CardID, &p.Ease, &p.Interval, &p.Reps, &p.Lapses, &p.Due, &lastReviewed); err != nil {
			return nil, err
		}
		if lastReviewed.Valid {
			p.LastReviewed = &lastReviewed.Time
		}
		progress[p.CardID] = p
	}

	return progress, rows.Err()
}

// Save upserts one card's progress record
func (r *ProgressRepo) Save(cardID string, p domain.Progress) error {
	query := `
		INSERT INTO progress (card_id, ease, interval, reps, lapses, due, last_reviewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (card_id)
		DO UPDATE SET ease = $2, interval = $3, reps = $4, lapses = $5, due = $6, last_reviewed = $7
	`
	_, err := r.db.Exec(query,
		cardID, p.Ease, p.Interval, p.Reps, p.Lapses, p.Due, nullTime(p.LastReviewed),
	)
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
