package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabasePath string
	UploadDir    string

	// OracleURL selects the inference backend: when set, predictions come
	// from the HTTP service at that address; when empty, the deterministic
	// in-process mock is used.
	OracleURL     string
	OracleTimeout time.Duration
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid value for %s: %q", k, v)
	}
	return n
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8081"),
		DatabasePath:  getEnv("DATABASE_PATH", "analysis.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		OracleURL:     getEnv("ORACLE_URL", ""),
		OracleTimeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}
