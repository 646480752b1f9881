package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAddr     = ":8080"
	defaultTreeName = "default"
)

// LoadDotEnv reads variables from the given files (".env" when none are
// given) without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Addr() string {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok && addr != "" {
		return addr
	}
	if port, ok := os.LookupEnv("APP_PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultAddr
}

func BasePath() string {
	return strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/")
}

// TreeName names the snapshot the server saves to and restores from.
func TreeName() string {
	if name, ok := os.LookupEnv("TREE_NAME"); ok && name != "" {
		return name
	}
	return defaultTreeName
}

func RestoreOnStart() bool {
	restore, ok := os.LookupEnv("TREE_RESTORE")
	return ok && restore != "0"
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// AllowedOrigins is the comma separated CORS_ORIGINS list; empty allows
// every origin.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
