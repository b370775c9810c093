package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// SolanaConfig holds the chain querier configuration
type SolanaConfig struct {
	RPCURL string `mapstructure:"rpc_url"`
	// TokenMint is the mint address of the qualifying token whose
	// balance and holding age gate the discounted tiers
	TokenMint string `mapstructure:"token_mint"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// EngineConfig holds mint engine tuning
type EngineConfig struct {
	ReservationTTL       time.Duration `mapstructure:"reservation_ttl"`
	ReapInterval         time.Duration `mapstructure:"reap_interval"`
	PersistRetryInterval time.Duration `mapstructure:"persist_retry_interval"`
}

// SweeperConfig holds the reservation sweeper configuration
type SweeperConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// APIConfig holds configuration for the API server binary
type APIConfig struct {
	BaseConfig      `mapstructure:",squash"`
	Server          ServerConfig   `mapstructure:"server"`
	Database        DatabaseConfig `mapstructure:"database"`
	NATS            NATSConfig     `mapstructure:"nats"`
	Solana          SolanaConfig   `mapstructure:"solana"`
	Auth            AuthConfig     `mapstructure:"auth"`
	Engine          EngineConfig   `mapstructure:"engine"`
	Sweeper         SweeperConfig  `mapstructure:"sweeper"`
	CollectionsPath string         `mapstructure:"collections_path"`
}

// CollectionTier is the config-file shape of one tier in a schedule
type CollectionTier struct {
	ID              string   `mapstructure:"id"`
	Allocated       uint32   `mapstructure:"allocated"`
	RequiresBalance uint64   `mapstructure:"requires_balance"`
	PriceStart      uint64   `mapstructure:"price_start"`
	PriceEnd        uint64   `mapstructure:"price_end"`
	Free            bool     `mapstructure:"free"`
	Wallets         []string `mapstructure:"wallets"`
}

// CollectionConfig is the config-file shape of one collection
type CollectionConfig struct {
	ID              string           `mapstructure:"id"`
	Authority       string           `mapstructure:"authority"`
	MaxSupply       uint64           `mapstructure:"max_supply"`
	PriceBase       uint64           `mapstructure:"price_base"`
	RevealThreshold uint64           `mapstructure:"reveal_threshold"`
	RevealedBaseURI string           `mapstructure:"revealed_base_uri"`
	GlobalSeed      string           `mapstructure:"global_seed"` // hex, optional
	Epoch           uint64           `mapstructure:"epoch"`
	HoldingPeriod   time.Duration    `mapstructure:"holding_period"`
	Tiers           []CollectionTier `mapstructure:"tiers"`
}

// ToDomain validates and converts a collection config into the domain type
func (c *CollectionConfig) ToDomain() (domain.Collection, error) {
	if c.ID == "" {
		return domain.Collection{}, errors.New("collection id is required")
	}
	authority := domain.WalletID(c.Authority)
	if !authority.Valid() {
		return domain.Collection{}, fmt.Errorf("collection %s: authority is not a valid wallet", c.ID)
	}
	if c.MaxSupply == 0 {
		return domain.Collection{}, fmt.Errorf("collection %s: max_supply must be positive", c.ID)
	}
	if c.RevealThreshold > c.MaxSupply {
		return domain.Collection{}, fmt.Errorf("collection %s: reveal_threshold exceeds max_supply", c.ID)
	}
	if len(c.Tiers) == 0 {
		return domain.Collection{}, fmt.Errorf("collection %s: at least one tier is required", c.ID)
	}

	col := domain.Collection{
		ID:              c.ID,
		Authority:       authority,
		MaxSupply:       c.MaxSupply,
		PriceBase:       c.PriceBase,
		RevealThreshold: c.RevealThreshold,
		RevealedBaseURI: c.RevealedBaseURI,
		Epoch:           c.Epoch,
		HoldingPeriod:   c.HoldingPeriod,
		Tiers:           make([]domain.TierConfig, 0, len(c.Tiers)),
	}

	if c.GlobalSeed != "" {
		seed, err := hex.DecodeString(c.GlobalSeed)
		if err != nil || len(seed) != 32 {
			return domain.Collection{}, fmt.Errorf("collection %s: global_seed must be 32 hex-encoded bytes", c.ID)
		}
		copy(col.GlobalSeed[:], seed)
	}

	var totalAllocated uint64
	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.ID == "" {
			return domain.Collection{}, fmt.Errorf("collection %s: tier id is required", c.ID)
		}
		if seen[t.ID] {
			return domain.Collection{}, fmt.Errorf("collection %s: duplicate tier %s", c.ID, t.ID)
		}
		seen[t.ID] = true
		totalAllocated += uint64(t.Allocated)

		wallets := make([]domain.WalletID, 0, len(t.Wallets))
		for _, w := range t.Wallets {
			wallet := domain.WalletID(w)
			if !wallet.Valid() {
				return domain.Collection{}, fmt.Errorf("collection %s: tier %s has invalid wallet %s", c.ID, t.ID, w)
			}
			wallets = append(wallets, wallet)
		}

		col.Tiers = append(col.Tiers, domain.TierConfig{
			ID:              domain.TierID(t.ID),
			Allocated:       t.Allocated,
			RequiresBalance: t.RequiresBalance,
			PriceStart:      t.PriceStart,
			PriceEnd:        t.PriceEnd,
			Free:            t.Free,
			Wallets:         wallets,
		})
	}

	if totalAllocated < col.MaxSupply {
		return domain.Collection{}, fmt.Errorf("collection %s: tier allocations (%d) do not cover max_supply (%d)", c.ID, totalAllocated, c.MaxSupply)
	}

	return col, nil
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MINT_EVENTS")
	v.SetDefault("nats.connection_name", "launchpad-api")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("engine.reservation_ttl", "5m")
	v.SetDefault("engine.reap_interval", "30s")
	v.SetDefault("engine.persist_retry_interval", "100ms")
	v.SetDefault("sweeper.pool_size", 4)
	v.SetDefault("collections_path", "config/collections.yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadCollections reads and validates the collection schedule file
func LoadCollections(path string) ([]domain.Collection, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read collections file: %w", err)
	}

	var file struct {
		Collections []CollectionConfig `mapstructure:"collections"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections file: %w", err)
	}
	if len(file.Collections) == 0 {
		return nil, errors.New("collections file defines no collections")
	}

	collections := make([]domain.Collection, 0, len(file.Collections))
	seen := make(map[string]bool, len(file.Collections))
	for i := range file.Collections {
		col, err := file.Collections[i].ToDomain()
		if err != nil {
			return nil, err
		}
		if seen[col.ID] {
			return nil, fmt.Errorf("duplicate collection %s", col.ID)
		}
		seen[col.ID] = true
		collections = append(collections, col)
	}

	return collections, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields
// when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"collections_path",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Solana
		"solana.rpc_url",
		"solana.token_mint",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Engine
		"engine.reservation_ttl",
		"engine.reap_interval",
		"engine.persist_retry_interval",
		// Sweeper
		"sweeper.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
