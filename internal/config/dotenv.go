package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"household-ledger-go/pkg/logger"
)

const (
	dotenvFilename = ".env"
	// dotenvPathVar points at an explicit env file and disables the search.
	dotenvPathVar = "LEDGER_ENV_FILE"
)

// loadDotEnv exports variables from the env file. Values already present in
// the process environment win.
func loadDotEnv(log logger.Logger) error {
	path, err := locateDotEnv()
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("dotenv: no env file found")
		return nil
	}
	if err != nil {
		return err
	}

	loaded, skipped, err := applyDotEnv(path)
	if err != nil {
		return err
	}
	log.Info("dotenv: applied env file", "path", path, "loaded", loaded, "skipped", skipped)
	return nil
}

func locateDotEnv() (string, error) {
	if explicit := os.Getenv(dotenvPathVar); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return searchUp(cwd, dotenvFilename)
}

// searchUp returns the first regular file named filename in dir or one of its
// ancestors.
func searchUp(dir, filename string) (string, error) {
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func applyDotEnv(path string) (loaded, skipped int, err error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return 0, 0, err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, set := os.LookupEnv(key); set {
			skipped++
			continue
		}
		if err := os.Setenv(key, values[key]); err != nil {
			return loaded, skipped, err
		}
		loaded++
	}
	return loaded, skipped, nil
}
