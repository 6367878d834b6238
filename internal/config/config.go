// Package config resolves service settings from the environment. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "skillshare"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Addr           string
	DiagAddr       string
	Store          string
	MongoURI       string
	MongoDatabase  string
	StoreTimeout   time.Duration
	AllowedOrigins []string
	LogLevel       string
}

// Default mirrors the origins the service has always allowed.
func Default() Config {
	return Config{
		Addr:          ":3333",
		DiagAddr:      ":9999",
		Store:         StoreMongo,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: ServiceName,
		StoreTimeout:  10 * time.Second,
		AllowedOrigins: []string{
			"https://skillshare-app.onrender.com",
			"http://localhost",
			"http://localhost:8080",
		},
		LogLevel: "info",
	}
}

// Load reads envFile (if it exists) and then SKILLSHARE_* variables on top
// of Default. MONGO_DETAILS is honoured as a fallback for the Mongo URI.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.DiagAddr = getEnv("DIAG_ADDR", cfg.DiagAddr)
	cfg.Store = getEnv("STORE", cfg.Store)
	cfg.MongoURI = getEnv("MONGO_URI", os.Getenv("MONGO_DETAILS"))
	if cfg.MongoURI == "" {
		cfg.MongoURI = Default().MongoURI
	}
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := getEnv("ALLOWED_ORIGINS", ""); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	timeout, err := getEnvDuration("STORE_TIMEOUT", cfg.StoreTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.StoreTimeout = timeout

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q: must be %q or %q", c.Store, StoreMongo, StoreMemory)
	}
	if c.Store == StoreMongo && c.MongoURI == "" {
		return errors.New("mongo uri is required")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout)
	}

	return nil
}

func envKey(name string) string {
	return strings.ToUpper(ServiceName) + "_" + name
}

func getEnv(name, fallback string) string {
	if v, ok := os.LookupEnv(envKey(name)); ok && v != "" {
		return v
	}

	return fallback
}

func getEnvDuration(name string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(name, "")
	if v == "" {
		return fallback, nil
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	// bare numbers are seconds
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey(name), v, err)
	}

	return time.Duration(secs) * time.Second, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
