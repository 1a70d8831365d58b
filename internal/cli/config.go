package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/licaudit/licaudit/pkg/errors"
	"github.com/licaudit/licaudit/pkg/extract"
)

// defaultConfigFile is looked up in the working directory when no
// --config flag is given.
const defaultConfigFile = "licaudit.toml"

// Config holds file-based settings. Flags override config values, which
// override the built-in defaults.
type Config struct {
	// Output is the report path written by scan.
	Output string `toml:"output"`

	Roots RootsConfig `toml:"roots"`
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// RootsConfig lists the scan roots per ecosystem.
type RootsConfig struct {
	Pip []string `toml:"pip"`
	Npm []string `toml:"npm"`
}

// CacheConfig selects the snapshot cache backend. Redis takes precedence
// over the file cache when an address is set.
type CacheConfig struct {
	Dir   string       `toml:"dir"`
	Redis string       `toml:"redis"`
	TTL   tomlDuration `toml:"ttl"`
}

// StoreConfig enables report persistence when a MongoDB URI is set.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		Output: "out/output.json",
		Roots: RootsConfig{
			Pip: []string{"."},
			Npm: []string{"."},
		},
		Cache: CacheConfig{
			TTL: tomlDuration{extract.DefaultSnapshotTTL},
		},
		Store: StoreConfig{
			Database:   "licaudit",
			Collection: "reports",
		},
	}
}

// loadConfig reads path on top of the defaults. An empty path falls back
// to licaudit.toml in the working directory; its absence is not an error,
// a missing explicit path is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if cfg.Cache.TTL.Duration <= 0 {
		cfg.Cache.TTL = tomlDuration{extract.DefaultSnapshotTTL}
	}
	return cfg, nil
}

// tomlDuration parses durations written as strings ("15m", "1h").
type tomlDuration struct {
	time.Duration
}

func (d *tomlDuration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
