package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	defaults := &Config{}
	defaults.LoadDefaults()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	defaults.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	want := &Config{}
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "legacy", cfg.KeyMode)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"db_driver":"postgres","db_dsn":"postgres://localhost/inv","s3_bucket":"b"}`)

	cfg, err := Load(newFlags(t, "-c", path))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/inv", cfg.DBDSN)
	assert.Equal(t, "b", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region, "untouched keys keep defaults")
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeFile(t, "cfg.toml", `
key_mode = "argon2"
log_level = "debug"
s3_endpoint = "http://127.0.0.1:9000"
`)

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "argon2", cfg.KeyMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3Endpoint)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "cfg.toml", `
db_dsn = "/from/file.db"
s3_bucket = "file-bucket"
`)

	cfg, err := Load(newFlags(t, "-c", path, "--s3-bucket", "flag-bucket"))
	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", cfg.DBDSN, "unset flag must not clobber the file value")
	assert.Equal(t, "flag-bucket", cfg.S3Bucket)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string][]string{
		"missing file":  {"-c", filepath.Join(t.TempDir(), "nope.json")},
		"bad json":      {"-c", writeFile(t, "bad.json", `{`)},
		"unknown json":  {"-c", writeFile(t, "x.json", `{"colour":"red"}`)},
		"unknown toml":  {"-c", writeFile(t, "x.toml", `colour = "red"`)},
		"bad driver":    {"--db-driver", "mysql"},
		"bad key mode":  {"--key-mode", "rot13"},
		"bad log level": {"--log-level", "chatty"},
		"empty dsn":     {"--db-dsn", " "},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(newFlags(t, args...))
			require.Error(t, err)
		})
	}
}

func TestWriteTOML_RoundTrip(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.S3Bucket = "inventory"

	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, cfg.WriteTOML(path))

	back := &Config{}
	require.NoError(t, back.LoadFile(path))
	assert.Empty(t, cmp.Diff(cfg, back))
}
