package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_CreateGetList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.items.Create(ctx, penForm())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.ProvenanceManual, created.Provenance)

	got, err := f.items.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	other := penForm()
	other.Name = "Eraser"
	_, err = f.items.Create(ctx, other)
	require.NoError(t, err)

	list, err := f.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Eraser", list[0].Name)
	assert.Equal(t, "Pen", list[1].Name)
}

func TestItemService_Create_Invalid(t *testing.T) {
	f := setup(t)

	form := penForm()
	form.Name = " "
	form.Price = "abc"
	_, err := f.items.Create(context.Background(), form)
	require.ErrorIs(t, err, common.ErrValidation)

	var v models.ValidationErrors
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "name is required", v.Name)
	assert.Equal(t, "price must be a number", v.Price)

	list, err := f.items.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemService_Update_PreservesProvenance(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	imported := penForm().ToItem(models.UnsavedID, models.ProvenanceImported)
	id, err := f.store.Items.Insert(ctx, imported)
	require.NoError(t, err)

	form := penForm()
	form.Quantity = "3"
	updated, err := f.items.Update(ctx, id, form)
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceImported, updated.Provenance)
	assert.Equal(t, 3, updated.Quantity)

	got, err := f.items.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestItemService_Update_Missing(t *testing.T) {
	f := setup(t)

	_, err := f.items.Update(context.Background(), 404, penForm())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestItemService_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.items.Create(ctx, penForm())
	require.NoError(t, err)
	require.NoError(t, f.items.Delete(ctx, created.ID))

	_, err = f.items.Get(ctx, created.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.items.Delete(ctx, created.ID), common.ErrorNotFound)
}

func TestItemService_Sell_UntilOutOfStock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	form := penForm()
	form.Quantity = "2"
	created, err := f.items.Create(ctx, form)
	require.NoError(t, err)

	sold, err := f.items.Sell(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sold.Quantity)

	sold, err = f.items.Sell(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sold.Quantity)
	assert.True(t, sold.OutOfStock())

	_, err = f.items.Sell(ctx, created.ID)
	require.ErrorIs(t, err, common.ErrOutOfStock)

	got, err := f.items.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestItemService_Sell_Concurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	form := penForm()
	form.Quantity = "5"
	created, err := f.items.Create(ctx, form)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		okCount  int
		oosCount int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.items.Sell(ctx, created.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, common.ErrOutOfStock):
				oosCount++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, okCount)
	assert.Equal(t, 3, oosCount)
}

func TestItemService_NewForm_DefaultQuantity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	form, err := f.items.NewForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", form.Quantity)

	require.NoError(t, f.settings.SetUseDefaultQuantity(ctx, true))
	require.NoError(t, f.settings.SetDefaultQuantity(ctx, 7))

	form, err = f.items.NewForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", form.Quantity)
}
