package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSink struct {
	files map[string][]byte
	err   error
}

func (m *memSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[name] = data
	return "mem://" + name, nil
}

func (m *memSink) Get(_ context.Context, ref string) ([]byte, error) {
	data, ok := m.files[ref]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return data, nil
}

func newTransfer(t *testing.T, f fixture) *transferService {
	t.Helper()
	svc := NewTransferService(f.store.Items, envelope.DefaultKey(), logging.Discard()).(*transferService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestTransfer_ExportImport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tr := newTransfer(t, f)

	form := penForm()
	form.Name = "Blue Pen"
	created, err := f.items.Create(ctx, form)
	require.NoError(t, err)

	sink := &memSink{}
	loc, err := tr.Export(ctx, created.ID, sink)
	require.NoError(t, err)
	assert.Equal(t, "mem://item_1700000000000_Blue_Pen.enc", loc)

	imported, err := tr.ImportFrom(ctx, sink, "item_1700000000000_Blue_Pen.enc")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, imported.ID)
	assert.Equal(t, models.ProvenanceImported, imported.Provenance)
	assert.Equal(t, created.Name, imported.Name)
	assert.Equal(t, created.SupplierEmail, imported.SupplierEmail)

	stored, err := f.items.Get(ctx, imported.ID)
	require.NoError(t, err)
	assert.Equal(t, imported, stored)

	list, err := f.items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTransfer_ExportText(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tr := newTransfer(t, f)

	created, err := f.items.Create(ctx, penForm())
	require.NoError(t, err)

	text, err := tr.ExportText(ctx, created.ID)
	require.NoError(t, err)

	item, err := envelope.Decode(text, envelope.DefaultKey())
	require.NoError(t, err)
	assert.Equal(t, "Pen", item.Name)

	_, err = tr.ExportText(ctx, 999)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTransfer_Import_Failures_StoreNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tr := newTransfer(t, f)

	wrongKey, err := envelope.Encode(models.Item{Name: "X", Price: 1, Quantity: 1}, envelope.LegacyKey("nope"))
	require.NoError(t, err)
	badPayload, err := envelope.SealText([]byte(`{"name":""}`), envelope.DefaultKey())
	require.NoError(t, err)

	for text, want := range map[string]error{
		"!!!":      envelope.ErrMalformedEnvelope,
		wrongKey:   envelope.ErrAuthenticationFailure,
		badPayload: envelope.ErrInvalidPayload,
	} {
		_, err := tr.Import(ctx, text)
		require.ErrorIs(t, err, want)
	}

	list, err := f.items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransfer_Export_SinkError(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tr := newTransfer(t, f)

	created, err := f.items.Create(ctx, penForm())
	require.NoError(t, err)

	boom := errors.New("disk full")
	_, err = tr.Export(ctx, created.ID, &memSink{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestTransfer_ImportFrom_SourceError(t *testing.T) {
	f := setup(t)
	_, err := newTransfer(t, f).ImportFrom(context.Background(), &memSink{}, "missing.enc")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
