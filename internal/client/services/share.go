package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/items"
	"github.com/dmitrijs2005/gophinventory/internal/common"
)

type ShareService interface {
	// Share builds the summary of an item, or returns
	// common.ErrSharingDisabled when the preferences forbid sharing.
	Share(ctx context.Context, id int64) (models.Share, error)
}

type shareService struct {
	items    items.Repository
	settings SettingsService
}

func NewShareService(repo items.Repository, settings SettingsService) ShareService {
	return &shareService{items: repo, settings: settings}
}

func (s *shareService) Share(ctx context.Context, id int64) (models.Share, error) {
	prefs, err := s.settings.Load(ctx)
	if err != nil {
		return models.Share{}, err
	}
	if prefs.DisableSharing {
		return models.Share{}, common.ErrSharingDisabled
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return models.Share{}, fmt.Errorf("error retrieving item %d: %w", id, err)
	}
	return item.ShareSummary(prefs.HideSensitiveData), nil
}
