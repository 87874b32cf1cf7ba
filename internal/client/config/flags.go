package config

import (
	"github.com/spf13/pflag"
)

const configFlag = "config"

// BindFlags registers -c/--config and one flag per config key on fs. The
// defaults shown in help come from c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringP(configFlag, "c", "", "path to a JSON or TOML config file")
	for _, f := range c.fields() {
		fs.String(flagName(f.key), *f.ptr, f.usage)
	}
}

// applyFlags copies the flags the user set on fs into c.
func (c *Config) applyFlags(fs *pflag.FlagSet) {
	byName := make(map[string]*string)
	for _, f := range c.fields() {
		byName[flagName(f.key)] = f.ptr
	}
	fs.Visit(func(f *pflag.Flag) {
		if ptr, ok := byName[f.Name]; ok {
			*ptr = f.Value.String()
		}
	})
}

// Load builds a Config from defaults, the file named by --config, and the
// flags set on fs, in that order, and validates the result. fs must have
// been set up with BindFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(configFlag); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyFlags(fs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
