package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	pawsapi "github.com/zainarain279/paws/internal/adapters/paws"
	"github.com/zainarain279/paws/internal/adapters/repo/tokenfile"
	"github.com/zainarain279/paws/internal/adapters/source/lines"
	"github.com/zainarain279/paws/internal/adapters/source/tomlfile"
	"github.com/zainarain279/paws/internal/application"
	"github.com/zainarain279/paws/internal/logging"
	"github.com/zainarain279/paws/internal/ports"
)

type app struct {
	log       *zap.Logger
	source    ports.AccountSource
	tokens    ports.TokenStore
	sessions  *application.SessionService
	quests    *application.QuestService
	gateways  ports.GatewayFactory
	runnerCfg application.RunnerConfig
}

func wireApp() (*app, error) {
	cfg, configDir, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.GetBool("log.debug"))

	tokens, err := tokenfile.NewStore(cfg.GetString("tokens.path"))
	if err != nil {
		return nil, fmt.Errorf("wire token store: %w", err)
	}

	source, err := selectAccountSource(cfg, configDir)
	if err != nil {
		return nil, err
	}

	gatewayCfg := pawsapi.Config{
		BaseURL:   cfg.GetString("api.base_url"),
		Timeout:   cfg.GetDuration("api.timeout"),
		Retries:   cfg.GetInt("api.retries"),
		RetryWait: cfg.GetDuration("api.retry_wait"),
	}

	return &app{
		log:      log,
		source:   source,
		tokens:   tokens,
		sessions: application.NewSessionService(tokens, ports.SystemClock{}, log),
		quests: application.NewQuestService(log, application.WithQuestPacing(
			cfg.GetDuration("run.quest_pause"),
			cfg.GetDuration("run.seasonal_pause"),
		)),
		gateways: pawsapi.Factory(gatewayCfg),
		runnerCfg: application.RunnerConfig{
			CycleInterval: cfg.GetDuration("run.cycle_interval"),
			AccountPause:  cfg.GetDuration("run.account_pause"),
		},
	}, nil
}

func loadConfig() (*viper.Viper, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".paws")

	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(".")
	cfg.AddConfigPath(configDir)
	cfg.SetEnvPrefix("PAWS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("api.base_url", pawsapi.DefaultBaseURL)
	cfg.SetDefault("api.timeout", "60s")
	cfg.SetDefault("api.retries", 2)
	cfg.SetDefault("api.retry_wait", "5s")
	cfg.SetDefault("accounts.path", filepath.Join(configDir, "accounts.toml"))
	cfg.SetDefault("files.init_data", "data.txt")
	cfg.SetDefault("files.wallets", "wallet.txt")
	cfg.SetDefault("files.proxies", "proxy.txt")
	cfg.SetDefault("tokens.path", filepath.Join(configDir, "tokens.json"))
	cfg.SetDefault("run.cycle_interval", "24h")
	cfg.SetDefault("run.account_pause", "5s")
	cfg.SetDefault("run.quest_pause", "2s")
	cfg.SetDefault("run.seasonal_pause", "3s")
	cfg.SetDefault("log.debug", false)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, configDir, nil
}

// selectAccountSource prefers the TOML account book when it exists and
// falls back to the parallel line files otherwise.
func selectAccountSource(cfg *viper.Viper, configDir string) (ports.AccountSource, error) {
	accountsPath := cfg.GetString("accounts.path")
	if accountsPath == "" {
		accountsPath = filepath.Join(configDir, "accounts.toml")
	}

	if _, err := os.Stat(accountsPath); err == nil {
		return tomlfile.NewSource(accountsPath), nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat accounts file: %w", err)
	}

	return lines.NewSource(
		cfg.GetString("files.init_data"),
		cfg.GetString("files.wallets"),
		cfg.GetString("files.proxies"),
	), nil
}
