package inbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/services"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	mu    sync.Mutex
	items []models.Item
	calls int
}

func (f *fakeImporter) ImportFrom(ctx context.Context, src services.Source, ref string) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	data, err := src.Get(ctx, ref)
	if err != nil {
		return models.Item{}, err
	}
	item, err := envelope.Decode(string(data), envelope.DefaultKey())
	if err != nil {
		return models.Item{}, err
	}
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeImporter) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, i := range f.items {
		out = append(out, i.Name)
	}
	return out
}

func sealed(t *testing.T, name string) []byte {
	t.Helper()
	s, err := envelope.Encode(models.Item{Name: name, Price: 1, Quantity: 1}, envelope.DefaultKey())
	require.NoError(t, err)
	return []byte(s)
}

func start(t *testing.T, dir string, imp Importer) *sync.Map {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	results := &sync.Map{}
	w := New(dir, imp, logging.Discard())
	w.OnResult = func(r Result) { results.Store(filepath.Base(r.Path), r) }

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return results
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestWatcher_ImportsExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.enc"), sealed(t, "Old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600))

	imp := &fakeImporter{}
	start(t, dir, imp)

	require.Eventually(t, func() bool {
		return exists(filepath.Join(dir, ImportedDir, "old.enc"))
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.enc"), sealed(t, "New"), 0o600))

	require.Eventually(t, func() bool {
		return exists(filepath.Join(dir, ImportedDir, "new.enc"))
	}, 5*time.Second, 20*time.Millisecond)

	assert.ElementsMatch(t, []string{"Old", "New"}, imp.names())
	assert.True(t, exists(filepath.Join(dir, "notes.txt")))
	assert.False(t, exists(filepath.Join(dir, "old.enc")))
}

func TestWatcher_RetriesIncompleteFileOnWrite(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	start(t, dir, imp)

	path := filepath.Join(dir, "slow.enc")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.Eventually(t, func() bool {
		imp.mu.Lock()
		defer imp.mu.Unlock()
		return imp.calls > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, exists(path), "incomplete file must stay")

	require.NoError(t, os.WriteFile(path, sealed(t, "Slow"), 0o600))

	require.Eventually(t, func() bool {
		return exists(filepath.Join(dir, ImportedDir, "slow.enc"))
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"Slow"}, imp.names())
}

func TestWatcher_LeavesRejectedFiles(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	results := start(t, dir, imp)

	wrongKey, err := envelope.Encode(models.Item{Name: "X", Price: 1, Quantity: 1}, envelope.LegacyKey("other"))
	require.NoError(t, err)
	path := filepath.Join(dir, "foreign.enc")
	require.NoError(t, os.WriteFile(path, []byte(wrongKey), 0o600))

	require.Eventually(t, func() bool {
		_, ok := results.Load("foreign.enc")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	r, _ := results.Load("foreign.enc")
	require.ErrorIs(t, r.(Result).Err, envelope.ErrAuthenticationFailure)
	assert.True(t, exists(path))
	assert.Empty(t, imp.names())
}

func TestWanted(t *testing.T) {
	assert.True(t, wanted("/in/a.enc"))
	assert.True(t, wanted("/in/A.ENC"))
	assert.False(t, wanted("/in/a.txt"))
	assert.False(t, wanted("/in/.tmp-1234"))
}
