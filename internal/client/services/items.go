package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/items"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/dbx"
)

// ItemService is the CRUD surface over stock items.
//
// Create and Update validate the form first and return
// models.ValidationErrors (matching common.ErrValidation) when it is invalid.
type ItemService interface {
	NewForm(ctx context.Context) (models.ItemForm, error)
	Create(ctx context.Context, form models.ItemForm) (models.Item, error)
	Update(ctx context.Context, id int64, form models.ItemForm) (models.Item, error)
	Get(ctx context.Context, id int64) (models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Delete(ctx context.Context, id int64) error
	Sell(ctx context.Context, id int64) (models.Item, error)
}

type itemService struct {
	db       *sql.DB
	dialect  dbx.Dialect
	settings SettingsService
}

// NewItemService constructs an ItemService over db. settings supplies the
// default quantity for new forms.
func NewItemService(db *sql.DB, dialect dbx.Dialect, settings SettingsService) ItemService {
	return &itemService{db: db, dialect: dialect, settings: settings}
}

func (s *itemService) repo(db dbx.DBTX) items.Repository {
	return items.NewSQLRepository(db, s.dialect)
}

func (s *itemService) NewForm(ctx context.Context) (models.ItemForm, error) {
	prefs, err := s.settings.Load(ctx)
	if err != nil {
		return models.ItemForm{}, err
	}

	var form models.ItemForm
	if prefs.UseDefaultQuantity {
		form.Quantity = strconv.Itoa(prefs.DefaultQuantity)
	}
	return form, nil
}

func (s *itemService) Create(ctx context.Context, form models.ItemForm) (models.Item, error) {
	if v := form.Validate(); !v.Valid() {
		return models.Item{}, v
	}

	item := form.ToItem(models.UnsavedID, models.ProvenanceManual)
	id, err := s.repo(s.db).Insert(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("saving error: %w", err)
	}
	item.ID = id
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id int64, form models.ItemForm) (models.Item, error) {
	if v := form.Validate(); !v.Valid() {
		return models.Item{}, v
	}

	var updated models.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = form.ToItem(id, current.Provenance)
		return repo.Update(ctx, updated)
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("error updating item %d: %w", id, err)
	}
	return updated, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (models.Item, error) {
	item, err := s.repo(s.db).GetByID(ctx, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("error retrieving item %d: %w", id, err)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context) ([]models.Item, error) {
	rows, err := s.repo(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return rows, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo(s.db).DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting item %d: %w", id, err)
	}
	return nil
}

// Sell takes one unit out of stock. The read and the write share a
// transaction so concurrent sells cannot drive the quantity negative.
func (s *itemService) Sell(ctx context.Context, id int64) (models.Item, error) {
	var sold models.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		item, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item.OutOfStock() {
			return common.ErrOutOfStock
		}
		item.Quantity--
		sold = item
		return repo.Update(ctx, item)
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("error selling item %d: %w", id, err)
	}
	return sold, nil
}
