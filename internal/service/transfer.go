package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"recall/internal/domain"
	"recall/internal/repository"

	"go.uber.org/zap"
)

// ErrInvalidImportFormat means the import payload failed validation.
// The whole batch is rejected; nothing is written.
var ErrInvalidImportFormat = errors.New("invalid import format")

// transferVersion is the only payload version this build understands.
const transferVersion = 1

// transferPayload is the exchange format for bulk backup and restore.
type transferPayload struct {
	Version    int                        `json:"version"`
	Flashcards []domain.Card              `json:"flashcards"`
	Progress   map[string]json.RawMessage `json:"progress"`
}

// progressRecord mirrors domain.Progress with pointer fields so a missing
// numeric field is distinguishable from a zero one.
type progressRecord struct {
	CardID       *string  `json:"card_id"`
	Ease         *float64 `json:"ease"`
	Interval     *int     `json:"interval"`
	Reps         *int     `json:"reps"`
	Lapses       *int     `json:"lapses"`
	Due          *string  `json:"due"`
	LastReviewed *string  `json:"last_reviewed"`
}

// TransferService handles bulk export and import of cards and progress
type TransferService struct {
	vault    repository.VaultRepository
	progress repository.ProgressRepository
	transfer repository.TransferRepository
	logger   *zap.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(
	vault repository.VaultRepository,
	progress repository.ProgressRepository,
	transfer repository.TransferRepository,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		vault:    vault,
		progress: progress,
		transfer: transfer,
		logger:   logger,
	}
}

// Export serializes every card and progress record
func (s *TransferService) Export() ([]byte, error) {
	cards, err := s.vault.LoadCards()
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	progressByID, err := s.progress.Load()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	rawProgress := make(map[string]json.RawMessage, len(progressByID))
	for id, p := range progressByID {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal progress %s: %w", id, err)
		}
		rawProgress[id] = raw
	}

	if cards == nil {
		cards = []domain.Card{}
	}
	payload := transferPayload{
		Version:    transferVersion,
		Flashcards: cards,
		Progress:   rawProgress,
	}

	return json.MarshalIndent(payload, "", "  ")
}

// Import validates the whole payload and writes it in a single
// transaction. Any malformed card or progress record rejects the entire
// batch with ErrInvalidImportFormat. With replace set, existing data is
// dropped; otherwise the payload is merged by ID.
func (s *TransferService) Import(data []byte, replace bool) error {
	var payload transferPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}
	if payload.Version != transferVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidImportFormat, payload.Version)
	}

	for i, card := range payload.Flashcards {
		if card.ID == "" {
			return fmt.Errorf("%w: card %d has no id", ErrInvalidImportFormat, i)
		}
		if !card.Kind.IsValid() {
			return fmt.Errorf("%w: card %s has unknown kind %q", ErrInvalidImportFormat, card.ID, card.Kind)
		}
	}

	progressByID := make(map[string]domain.Progress, len(payload.Progress))
	for id, raw := range payload.Progress {
		p, err := parseProgress(id, raw)
		if err != nil {
			return err
		}
		progressByID[id] = p
	}

	if err := s.transfer.ImportAll(payload.Flashcards, progressByID, replace); err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	s.logger.Info("Import completed",
		zap.Int("cards", len(payload.Flashcards)),
		zap.Int("progress_records", len(progressByID)),
		zap.Bool("replace", replace),
	)

	return nil
}

// parseProgress validates that all five numeric fields and the due date are
// present, then round-trips the record through domain.Progress.
func parseProgress(id string, raw json.RawMessage) (domain.Progress, error) {
	var rec progressRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Progress{}, fmt.Errorf("%w: progress %s: %v", ErrInvalidImportFormat, id, err)
	}
	if rec.Ease == nil || rec.Interval == nil || rec.Reps == nil || rec.Lapses == nil {
		return domain.Progress{}, fmt.Errorf("%w: progress %s is missing numeric fields", ErrInvalidImportFormat, id)
	}
	if rec.Due == nil {
		return domain.Progress{}, fmt.Errorf("%w: progress %s has no due date", ErrInvalidImportFormat, id)
	}

	var p domain.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Progress{}, fmt.Errorf("%w: progress %s: %v", ErrInvalidImportFormat, id, err)
	}
	p.CardID = id
	return p, nil
}
