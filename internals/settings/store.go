package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/minelander/internals/merrors"
	"github.com/spf13/viper"
)

// EnvPrefix is used for environment overrides (eg. MINELANDER_GAME_RAM)
const EnvPrefix = "MINELANDER"

// Store reads and writes the settings blob
type Store struct {
	path string
	v    *viper.Viper
}

// Open reads the settings blob at path. A missing file is not an error,
// all keys fall back to their defaults
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, merrors.Io("read settings", err)
		}
		return nil, merrors.Parse("read settings", err)
	}

	return &Store{path: path, v: v}, nil
}

// Path returns the location of the settings blob
func (s *Store) Path() string { return s.path }

// Settings decodes the blob. Every call returns a fresh copy
func (s *Store) Settings() (*Settings, error) {
	settings := &Settings{}
	if err := s.v.Unmarshal(settings); err != nil {
		return nil, merrors.Parse("decode settings", err)
	}
	return settings, nil
}

// Game is a shortcut for Settings().Game()
func (s *Store) Game() (*GameSettings, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	return settings.Game()
}

// Get returns a single value
func (s *Store) Get(key string) interface{} {
	return s.v.Get(key)
}

// Set changes a single value. Call Save to persist it
func (s *Store) Set(key string, value interface{}) {
	s.v.Set(key, value)
}

// Save writes all settings (including defaults) back to disk
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return merrors.Io("save settings", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return merrors.Io("save settings", err)
	}
	return nil
}
