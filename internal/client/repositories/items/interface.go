package items

import (
	"context"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
)

// Repository describes CRUD operations for stock items.
type Repository interface {
	// Insert stores item as a new row and returns the assigned ID. The
	// item's own ID is ignored.
	Insert(ctx context.Context, item models.Item) (int64, error)

	// Update overwrites every column of the row with item.ID.
	Update(ctx context.Context, item models.Item) error

	// DeleteByID removes a row permanently.
	DeleteByID(ctx context.Context, id int64) error

	// GetByID returns one item or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (models.Item, error)

	// GetAll returns every item ordered by name.
	GetAll(ctx context.Context) ([]models.Item, error)
}
