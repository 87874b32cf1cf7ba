package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdEnv struct {
	dir  string
	base []string
}

func newCmdEnv(t *testing.T) cmdEnv {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	return cmdEnv{
		dir: dir,
		base: []string{
			"--db-dsn", filepath.Join(dir, "inventory.db"),
			"--cache-dir", filepath.Join(dir, "cache"),
			"--downloads-dir", filepath.Join(dir, "downloads"),
			"--inbox-dir", filepath.Join(dir, "inbox"),
			"--log-level", "error",
		},
	}
}

func (e cmdEnv) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append(append([]string{}, e.base...), args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_ListEmpty(t *testing.T) {
	e := newCmdEnv(t)
	code, out, _ := e.run("list")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No items yet")
}

func TestExecute_Errors(t *testing.T) {
	e := newCmdEnv(t)

	code, _, errOut := e.run("show", "abc")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "is not an item id")

	code, _, errOut = e.run("show", "7")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no such item")

	code, _, errOut = e.run("import")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "give either a file or --s3")

	code, _, _ = e.run("--db-driver", "oracle", "list")
	assert.Equal(t, 1, code)
}

func TestExecute_ImportExportShareSettings(t *testing.T) {
	e := newCmdEnv(t)
	src := newTestApp(t, "")
	src.addPen(t)
	require.NoError(t, src.ExportTo(context.Background(), 1, e.dir))

	matches, err := filepath.Glob(filepath.Join(e.dir, "item_*.enc"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	code, out, errOut := e.run("import", matches[0])
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Imported Blue Pen as #1")

	code, out, _ = e.run("show", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Imported from file")

	code, _, _ = e.run("export", "1", "--cache")
	require.Equal(t, 0, code)
	entries, err := os.ReadDir(filepath.Join(e.dir, "cache"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	code, _, _ = e.run("export", "1", "--cache", "--s3")
	assert.Equal(t, 1, code, "destination flags are exclusive")

	share := filepath.Join(e.dir, "share.txt")
	code, _, _ = e.run("share", "1", "--out", share)
	require.Equal(t, 0, code)
	assert.FileExists(t, share)

	code, _, _ = e.run("settings", "set", "disable_sharing", "yes")
	require.Equal(t, 0, code)
	code, out, _ = e.run("settings")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "disable_sharing        on")

	code, _, errOut = e.run("share", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "sharing is disabled")
}

func TestExecute_ConfigFile(t *testing.T) {
	e := newCmdEnv(t)
	cfg := filepath.Join(e.dir, "inventory.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("key_mode = \"argon2\"\nkey_passphrase = \"correct horse\"\n"), 0o600))

	code, _, errOut := e.run("-c", cfg, "list")
	require.Equal(t, 0, code, errOut)

	code, _, _ = e.run("-c", filepath.Join(e.dir, "missing.toml"), "list")
	assert.Equal(t, 1, code)
}
