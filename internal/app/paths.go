package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	appDirName    = "pftrack"
	storeFileName = "pftrack.db"
	envFileName   = ".env"
)

// APIKeyEnvVar supplies a nutrition-lookup API key when the envelope holds
// none, either from the process environment or the .env beside the store.
const APIKeyEnvVar = "PFTRACK_API_KEY"

func DefaultStorePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, storeFileName), nil
}

func EnsureStoreDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// LoadDotEnv loads the optional .env file next to the store into the
// process environment. A missing file is fine; a broken one is not.
func LoadDotEnv(storePath string) error {
	envPath := filepath.Join(filepath.Dir(storePath), envFileName)
	if _, err := os.Stat(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
