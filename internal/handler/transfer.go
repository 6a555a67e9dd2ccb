package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"recall/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxImportSize caps uploaded backup documents at 10 MiB
const maxImportSize = 10 << 20

// handleExport sends the whole collection as a JSON document
func (h *Handler) handleExport(c tele.Context) error {
	data, err := h.transferService.Export()
	if err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		return c.Send("Export failed. Please try again later.")
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: fmt.Sprintf("recall-backup-%s.json", time.Now().Format("20060102")),
		MIME:     "application/json",
	}
	return c.Send(doc)
}

// handleImportDocument merges an uploaded backup into the collection.
// Send the file with caption "replace" to wipe existing data first.
func (h *Handler) handleImportDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}
	if doc.FileSize > maxImportSize {
		return c.Send("That file is too large to import.")
	}

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download import document", zap.Error(err))
		return c.Send("Couldn't download the file. Please try again.")
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxImportSize))
	if err != nil {
		h.logger.Error("Failed to read import document", zap.Error(err))
		return c.Send("Couldn't read the file. Please try again.")
	}

	replace := strings.EqualFold(strings.TrimSpace(c.Message().Caption), "replace")

	if err := h.transferService.Import(data, replace); err != nil {
		if errors.Is(err, service.ErrInvalidImportFormat) {
			return c.Send(fmt.Sprintf("That doesn't look like a recall backup: %v", err))
		}
		h.logger.Error("Import failed", zap.Error(err))
		return c.Send("Import failed, nothing was changed. Please try again later.")
	}

	mode := "merged into"
	if replace {
		mode = "replaced"
	}
	return c.Send(fmt.Sprintf("✅ Backup %s your collection.", mode), mainMenuMarkup())
}
