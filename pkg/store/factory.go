package store

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"
)

// FileSettings configures the file driver.
type FileSettings struct {
	Dir        string `mapstructure:"dir"`
	Passphrase string `mapstructure:"passphrase"`
}

// RedisSettings configures the redis driver.
type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SQLiteSettings configures the sqlite driver.
type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

// BadgerSettings configures the badger driver.
type BadgerSettings struct {
	Path string `mapstructure:"path"`
}

// New builds a closed store for driver from free-form settings, as found
// under [store.settings] in the config file. An empty driver selects the
// file store.
func New(driver string, settings map[string]any) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverNull:
		return NewNullStore(), nil
	case "", DriverFile:
		var cfg FileSettings
		if err := decodeSettings(DriverFile, settings, &cfg); err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Dir, WithPassphrase(cfg.Passphrase)), nil
	case DriverRedis:
		cfg := RedisSettings{Addr: "localhost:6379"}
		if err := decodeSettings(DriverRedis, settings, &cfg); err != nil {
			return nil, err
		}
		return NewRedisStore(&redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		}, cfg.Prefix), nil
	case DriverSQLite:
		cfg := SQLiteSettings{Path: "shiki.db"}
		if err := decodeSettings(DriverSQLite, settings, &cfg); err != nil {
			return nil, err
		}
		return NewSQLiteStore(cfg.Path), nil
	case DriverBadger:
		cfg := BadgerSettings{Path: "shiki-badger"}
		if err := decodeSettings(DriverBadger, settings, &cfg); err != nil {
			return nil, err
		}
		return NewBadgerStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func decodeSettings(driver string, settings map[string]any, out any) error {
	if len(settings) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(settings); err != nil {
		return newStoreError(driver, "open", "", "invalid settings", err)
	}
	return nil
}
