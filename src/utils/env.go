package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

func InitEnvironmentVariables(envDir, goEnv string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	// Determine which .env file to load
	envFile := DEV_ENV_FILENAME
	if goEnv == "production" {
		envFile = PROD_ENV_FILENAME
	}

	if envDir != "" {
		envFile = fmt.Sprintf("%s/%s", envDir, envFile)
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Debugf("InitEnvironmentVariables: %s not found, using process environment", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("missing %s environment variable", name)
	}

	return v, nil
}

func GetEnvOrDefault(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}

	return defaultValue
}
