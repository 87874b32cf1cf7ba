package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/config"
	"github.com/dmitrijs2005/gophinventory/internal/client/services"
	"github.com/dmitrijs2005/gophinventory/internal/client/storage"
	"github.com/dmitrijs2005/gophinventory/internal/dbx"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/filex"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
	"github.com/dmitrijs2005/gophinventory/internal/objectstore"
)

// objectStore is what the CLI needs from a remote bucket.
type objectStore interface {
	services.Sink
	services.Source
}

type App struct {
	config   *config.Config
	store    *storage.Store
	log      logging.Logger
	items    services.ItemService
	settings services.SettingsService
	transfer services.TransferService
	share    services.ShareService
	newS3    func(ctx context.Context) (objectStore, error)
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the store named by c, resolves the envelope key and wires
// the services. Logs go to stderr; user output goes to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logging.New(c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	if d, _ := dbx.ParseDialect(c.DBDriver); d == dbx.DialectSQLite && isFilePath(c.DBDSN) {
		if err := filex.EnsureDir(filepath.Dir(c.DBDSN)); err != nil {
			return nil, err
		}
	}

	store, err := storage.Open(ctx, c.DBDriver, c.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	key, err := services.NewKeyService(store.Settings, log).Resolve(ctx, c.KeyMode, c.KeyPassphrase,
		func() ([]byte, error) { return GetPassword(out, "Envelope passphrase: ") })
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return newApp(c, store, key, log, in, out), nil
}

func newApp(c *config.Config, store *storage.Store, key envelope.Key, log logging.Logger, in io.Reader, out io.Writer) *App {
	prefs := services.NewSettingsService(store.Settings, key)
	return &App{
		config:   c,
		store:    store,
		log:      log,
		items:    services.NewItemService(store.DB, store.Dialect, prefs),
		settings: prefs,
		transfer: services.NewTransferService(store.Items, key, log),
		share:    services.NewShareService(store.Items, prefs),
		newS3: func(ctx context.Context) (objectStore, error) {
			return objectstore.New(ctx, objectstore.Config{
				Bucket:    c.S3Bucket,
				Region:    c.S3Region,
				Endpoint:  c.S3Endpoint,
				AccessKey: c.S3AccessKey,
				SecretKey: c.S3SecretKey,
				Prefix:    c.S3Prefix,
			})
		},
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
