package domain

// DeckStats holds per-deck aggregate counts, recomputed on demand
// and never persisted.
type DeckStats struct {
	Deck     string
	Total    int
	Due      int
	New      int
	Mastered int
}
