package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/storage"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fixture struct {
	store    *storage.Store
	settings SettingsService
	items    ItemService
}

func setup(t *testing.T) fixture {
	t.Helper()
	st := setupStore(t)
	prefs := NewSettingsService(st.Settings, envelope.DefaultKey())
	return fixture{
		store:    st,
		settings: prefs,
		items:    NewItemService(st.DB, st.Dialect, prefs),
	}
}

func penForm() models.ItemForm {
	return models.ItemForm{
		Name:          "Pen",
		Price:         "100",
		Quantity:      "10",
		SupplierName:  "Acme",
		SupplierEmail: "sales@acme.io",
		SupplierPhone: "+12345678901",
	}
}
