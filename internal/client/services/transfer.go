package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/items"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
)

// Sink stores an exported envelope under name and reports where it went.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Source reads an envelope back by reference (a path or an object key).
type Source interface {
	Get(ctx context.Context, ref string) ([]byte, error)
}

// TransferService moves single items in and out of the store as
// encrypted envelopes.
type TransferService interface {
	ExportText(ctx context.Context, id int64) (string, error)
	Export(ctx context.Context, id int64, sink Sink) (string, error)

	// Import decodes text and stores the item as a new row. Envelope
	// errors are returned so that errors.Is matches the envelope sentinels.
	Import(ctx context.Context, text string) (models.Item, error)
	ImportFrom(ctx context.Context, src Source, ref string) (models.Item, error)
}

type transferService struct {
	items items.Repository
	key   envelope.Key
	log   logging.Logger
	now   func() time.Time
}

func NewTransferService(repo items.Repository, key envelope.Key, log logging.Logger) TransferService {
	return &transferService{items: repo, key: key, log: log, now: time.Now}
}

func (s *transferService) ExportText(ctx context.Context, id int64) (string, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("error retrieving item %d: %w", id, err)
	}
	return envelope.Encode(item, s.key)
}

func (s *transferService) Export(ctx context.Context, id int64, sink Sink) (string, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("error retrieving item %d: %w", id, err)
	}

	text, err := envelope.Encode(item, s.key)
	if err != nil {
		return "", err
	}

	loc, err := sink.Put(ctx, item.ExportFileName(s.now()), []byte(text))
	if err != nil {
		return "", fmt.Errorf("error writing export: %w", err)
	}
	s.log.Info(ctx, "item exported", "id", id, "location", loc)
	return loc, nil
}

func (s *transferService) Import(ctx context.Context, text string) (models.Item, error) {
	item, err := envelope.Decode(text, s.key)
	if err != nil {
		s.log.Warn(ctx, "envelope rejected", "error", err)
		return models.Item{}, err
	}

	id, err := s.items.Insert(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("saving error: %w", err)
	}
	item.ID = id
	s.log.Info(ctx, "item imported", "id", id, "name", item.Name)
	return item, nil
}

func (s *transferService) ImportFrom(ctx context.Context, src Source, ref string) (models.Item, error) {
	data, err := src.Get(ctx, ref)
	if err != nil {
		return models.Item{}, fmt.Errorf("error reading %s: %w", ref, err)
	}
	return s.Import(ctx, string(data))
}
