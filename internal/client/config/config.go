package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/dbx"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
)

const appDir = "gophinventory"

// Config holds runtime settings for the inventory CLI.
type Config struct {
	DBDriver      string `json:"db_driver" toml:"db_driver"`
	DBDSN         string `json:"db_dsn" toml:"db_dsn"`
	CacheDir      string `json:"cache_dir" toml:"cache_dir"`
	DownloadsDir  string `json:"downloads_dir" toml:"downloads_dir"`
	InboxDir      string `json:"inbox_dir" toml:"inbox_dir"`
	KeyMode       string `json:"key_mode" toml:"key_mode"`
	KeyPassphrase string `json:"key_passphrase" toml:"key_passphrase"`
	LogLevel      string `json:"log_level" toml:"log_level"`

	S3Bucket    string `json:"s3_bucket" toml:"s3_bucket"`
	S3Region    string `json:"s3_region" toml:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint" toml:"s3_endpoint"`
	S3AccessKey string `json:"s3_access_key" toml:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key" toml:"s3_secret_key"`
	S3Prefix    string `json:"s3_prefix" toml:"s3_prefix"`
}

// LoadDefaults populates c with defaults rooted in the user's config,
// cache and home directories.
func (c *Config) LoadDefaults() {
	configDir := userDir(os.UserConfigDir)
	cacheDir := userDir(os.UserCacheDir)
	home := userDir(os.UserHomeDir)

	c.DBDriver = string(dbx.DialectSQLite)
	c.DBDSN = filepath.Join(configDir, appDir, "inventory.db")
	c.CacheDir = filepath.Join(cacheDir, appDir)
	c.DownloadsDir = filepath.Join(home, "Downloads")
	c.InboxDir = filepath.Join(configDir, appDir, "inbox")
	c.KeyMode = "legacy"
	c.LogLevel = "warn"
	c.S3Region = "us-east-1"
}

func userDir(fn func() (string, error)) string {
	dir, err := fn()
	if err != nil {
		return "."
	}
	return dir
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	if _, err := dbx.ParseDialect(c.DBDriver); err != nil {
		return err
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("db_dsn must not be empty")
	}
	switch c.KeyMode {
	case "legacy", "argon2":
	default:
		return fmt.Errorf("unknown key_mode %q (want legacy or argon2)", c.KeyMode)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// fields maps every config key to its field, so files and flags share one
// list of names.
func (c *Config) fields() []field {
	return []field{
		{"db_driver", &c.DBDriver, "database driver: sqlite or postgres"},
		{"db_dsn", &c.DBDSN, "database file path or connection string"},
		{"cache_dir", &c.CacheDir, "directory for cache exports"},
		{"downloads_dir", &c.DownloadsDir, "downloads directory; exports go to its Inventory subfolder"},
		{"inbox_dir", &c.InboxDir, "directory watched for dropped envelope files"},
		{"key_mode", &c.KeyMode, "envelope key: legacy (fixed, compatible) or argon2 (passphrase-derived)"},
		{"key_passphrase", &c.KeyPassphrase, "passphrase for the envelope key"},
		{"log_level", &c.LogLevel, "log level: debug, info, warn, error"},
		{"s3_bucket", &c.S3Bucket, "S3 bucket for shared exports"},
		{"s3_region", &c.S3Region, "S3 region"},
		{"s3_endpoint", &c.S3Endpoint, "S3-compatible endpoint URL (MinIO etc.)"},
		{"s3_access_key", &c.S3AccessKey, "S3 access key"},
		{"s3_secret_key", &c.S3SecretKey, "S3 secret key"},
		{"s3_prefix", &c.S3Prefix, "key prefix inside the bucket"},
	}
}

type field struct {
	key   string
	ptr   *string
	usage string
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
