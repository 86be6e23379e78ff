package tomlfile

import (
	"context"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

// Source loads accounts from a single TOML account book, the preferred
// alternative to the parallel line files.
type Source struct {
	path string
}

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

type accountSchema struct {
	Name     string `toml:"name"`
	InitData string `toml:"init_data"`
	Wallet   string `toml:"wallet"`
	Proxy    string `toml:"proxy"`
}

const supportedVersion = 1

var _ ports.AccountSource = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Load(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	if file.Version != 0 && file.Version != supportedVersion {
		return nil, fmt.Errorf("unsupported accounts file version %d", file.Version)
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for i, entry := range file.Accounts {
		id, name, err := domain.IdentityFromInitData(entry.InitData)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i+1, err)
		}
		if entry.Name != "" {
			name = entry.Name
		}

		accounts = append(accounts, domain.Account{
			ID:       id,
			Name:     name,
			InitData: entry.InitData,
			Wallet:   entry.Wallet,
			Proxy:    entry.Proxy,
		})
	}

	return accounts, nil
}
