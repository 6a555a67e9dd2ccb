package domain

import "time"

// CardKind distinguishes the two card layouts
type CardKind string

const (
	KindBasic CardKind = "basic"
	KindCloze CardKind = "cloze"
)

// IsValid reports whether k is a known card kind
func (k CardKind) IsValid() bool {
	return k == KindBasic || k == KindCloze
}

// Card represents one flashcard. Content is owned by the vault;
// the engine treats it as read-only input.
type Card struct {
	ID        string    `json:"id"`
	Deck      string    `json:"deck"`
	Kind      CardKind  `json:"kind"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Hint      string    `json:"hint,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasHint reports whether the card carries hint text
func (c Card) HasHint() bool {
	return c.Hint != ""
}
