package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/minepkg/minelander/internals/merrors"
	"github.com/zalando/go-keyring"
)

var (
	keyringService = "minelander"
	keyringUser    = "account"

	credentialFile = "minelander_credentials.json"
)

// Store stores the account used to launch minecraft. It uses the OS keyring
// and falls back to a file in the installation root if there is none
type Store struct {
	globalDir     string
	NoKeyRingMode bool
	Account       *Account
}

// New creates a store and reads existing credentials
func New(globalDir string) (*Store, error) {
	store := &Store{globalDir: globalDir}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// Find tries to find existing credentials
func (s *Store) Find() error {
	blob, err := keyring.Get(keyringService, keyringUser)
	switch err {
	case nil:
		return s.decode([]byte(blob))
	case keyring.ErrNotFound:
		// no credentials (yet) is fine
		return nil
	default:
		s.NoKeyRingMode = true
		return s.findFromFile()
	}
}

func (s *Store) decode(blob []byte) error {
	account := &Account{}
	if err := json.Unmarshal(blob, account); err != nil {
		return merrors.Parse("decode credentials", err)
	}
	s.Account = account
	return nil
}

// findFromFile is the same as Find but reads from a plain file instead
func (s *Store) findFromFile() error {
	raw, err := os.ReadFile(s.filePath())
	switch {
	case err == nil:
		return s.decode(raw)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return merrors.Io("read credentials", err)
	}
}

// Set persists account
func (s *Store) Set(account *Account) error {
	blob, err := json.Marshal(account)
	if err != nil {
		return err
	}
	s.Account = account

	if s.NoKeyRingMode {
		return s.writeFile(blob)
	}
	return keyring.Set(keyringService, keyringUser, string(blob))
}

// Clear removes the stored account
func (s *Store) Clear() error {
	s.Account = nil
	if s.NoKeyRingMode {
		err := os.Remove(s.filePath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return merrors.Io("remove credentials", err)
		}
		return nil
	}
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && err != keyring.ErrNotFound {
		return err
	}
	return nil
}

// Identity returns the stored account or an offline identity for playerName
func (s *Store) Identity(playerName string) *Account {
	if s.Account != nil && s.Account.PlayerName != "" {
		return s.Account
	}
	return Offline(playerName)
}

func (s *Store) filePath() string {
	return filepath.Join(s.globalDir, credentialFile)
}

func (s *Store) writeFile(content []byte) error {
	if err := os.MkdirAll(s.globalDir, os.ModePerm); err != nil {
		return merrors.Io("write credentials", err)
	}
	if err := os.WriteFile(s.filePath(), content, 0600); err != nil {
		return merrors.Io("write credentials", err)
	}
	return nil
}
