package postgres

import (
	"database/sql"

	"recall/internal/domain"
)

// CardRepo implements repository.VaultRepository
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

// LoadCards returns all cards ordered by creation time
func (r *CardRepo) LoadCards() ([]domain.Card, error) {
	query := `
		SELECT id, deck, kind, question, answer, hint, image, created_at
		FROM cards
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var hint, image sql.NullString
		if err := rows.Scan(&c.ID, &c.Deck, &c.Kind, &c.Question, &c.Answer, &hint, &image, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Hint = hint.String
		c.Image = image.String
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// Refresh reloads all cards from the database
func (r *CardRepo) Refresh() ([]domain.Card, error) {
	return r.LoadCards()
}

// SaveCard inserts a new card
func (r *CardRepo) SaveCard(card domain.Card) error {
	query := `
		INSERT INTO cards (id, deck, kind, question, answer, hint, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		card.ID, card.Deck, string(card.Kind), card.Question, card.Answer,
		nullString(card.Hint), nullString(card.Image), card.CreatedAt,
	)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
