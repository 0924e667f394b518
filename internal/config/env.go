package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/standardbeagle/osmtags/internal/errors"
)

// Environment overrides.
const (
	EnvDataDir = "OSMTAGS_DATA_DIR"
	EnvLocale  = "OSMTAGS_LOCALE"
	EnvLogDir  = "OSMTAGS_LOG_DIR"
	EnvDebug   = "OSMTAGS_DEBUG"
)

// readEnv returns the OSMTAGS_* settings from the .env file at path with
// the process environment taking precedence.
func readEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	fileEnv, err := godotenv.Read(path)
	switch {
	case err == nil:
		env = fileEnv
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, name := range []string{EnvDataDir, EnvLocale, EnvLogDir, EnvDebug} {
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return env, nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v, ok := env[EnvDataDir]; ok {
		cfg.Dataset.Dir = v
	}
	if v, ok := env[EnvLocale]; ok && v != "" {
		cfg.Dataset.Locale = v
	}
	if v, ok := env[EnvLogDir]; ok && v != "" {
		cfg.Logging.Dir = v
	}
	if v, ok := env[EnvDebug]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigError(EnvDebug, v, err)
		}
		cfg.Logging.Debug = b
	}
	return nil
}
