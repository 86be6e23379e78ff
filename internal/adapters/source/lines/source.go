package lines

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

// Source loads accounts from parallel line-oriented files: one init
// payload, one wallet address and (optionally) one proxy URI per line,
// line N of each file describing the same account.
type Source struct {
	initDataPath string
	walletsPath  string
	proxiesPath  string
}

var _ ports.AccountSource = (*Source)(nil)

func NewSource(initDataPath, walletsPath, proxiesPath string) *Source {
	return &Source{
		initDataPath: initDataPath,
		walletsPath:  walletsPath,
		proxiesPath:  proxiesPath,
	}
}

func (s *Source) Load(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	initData, err := readLines(s.initDataPath)
	if err != nil {
		return nil, fmt.Errorf("read init data file: %w", err)
	}

	wallets, err := readLines(s.walletsPath)
	if err != nil {
		return nil, fmt.Errorf("read wallets file: %w", err)
	}

	var proxies []string
	if s.proxiesPath != "" {
		proxies, err = readLines(s.proxiesPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read proxies file: %w", err)
		}
	}

	if len(wallets) != len(initData) {
		return nil, fmt.Errorf("%w: %d init payloads, %d wallets",
			domain.ErrAccountListMismatch, len(initData), len(wallets))
	}
	if len(proxies) > 0 && len(proxies) != len(initData) {
		return nil, fmt.Errorf("%w: %d init payloads, %d proxies",
			domain.ErrAccountListMismatch, len(initData), len(proxies))
	}

	accounts := make([]domain.Account, 0, len(initData))
	for i, raw := range initData {
		id, name, err := domain.IdentityFromInitData(raw)
		if err != nil {
			return nil, fmt.Errorf("account on line %d: %w", i+1, err)
		}

		account := domain.Account{
			ID:       id,
			Name:     name,
			InitData: raw,
			Wallet:   wallets[i],
		}
		if len(proxies) > 0 {
			account.Proxy = proxies[i]
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
