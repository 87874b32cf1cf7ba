// Package config loads runtime configuration for the inventory CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in
//     .toml are read as TOML, anything else as JSON.
//  3. Command-line flags registered by BindFlags. Only flags the user
//     actually set override earlier values.
//
// # File schema
//
// Keys are the same in both formats:
//
//	db_driver = "sqlite"
//	db_dsn = "/home/me/.config/gophinventory/inventory.db"
//	key_mode = "legacy"
//	log_level = "info"
//	s3_bucket = "inventory"
//	s3_endpoint = "http://127.0.0.1:9000"
//
// Flag names are the keys with dashes: --db-driver, --s3-bucket, ...
package config
