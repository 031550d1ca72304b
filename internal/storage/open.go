package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daymark/internal/keyring"
	"github.com/julianstephens/daymark/internal/storage/jsonfile"
	"github.com/julianstephens/daymark/internal/storage/postgres"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
)

// KeyringConfig selects the PostgreSQL connection string stored in the OS keyring.
const KeyringConfig = "keyring"

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*jsonfile.Store)(nil)

	_ Migrator      = (*sqlite.Store)(nil)
	_ Migrator      = (*postgres.Store)(nil)
	_ SchemaChecker = (*sqlite.Store)(nil)
)

// Kind identifies the backend a config value resolves to.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// DetectKind picks a backend from the shape of the config value.
func DetectKind(config string) Kind {
	switch {
	case config == KeyringConfig, postgres.IsURL(config):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Open builds the provider for config without touching the backing store.
// Call Init or Load on the result.
func Open(config string) (Provider, error) {
	switch DetectKind(config) {
	case KindPostgres:
		connStr := config
		if config == KeyringConfig {
			stored, err := keyring.GetConnectionString()
			if err != nil {
				if errors.Is(err, keyring.ErrNotFound) {
					return nil, fmt.Errorf("no connection string in keyring, use 'daymark keyring set' first")
				}
				return nil, err
			}
			connStr = stored
		} else if postgres.HasEmbeddedCredentials(config) {
			return nil, postgres.ErrEmbeddedCredentials
		}
		return postgres.New(connStr), nil
	case KindJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return jsonfile.NewStore(path), nil
	default:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}
