// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"os"

	"github.com/joho/godotenv"
)

var envLoaded = false

// LoadEnvFile loads variables from an env file into the process environment.
// The file defaults to .env and can be overridden with a --env-file argument.
// Variables already present in the environment are never overwritten.
func LoadEnvFile() {
	if envLoaded {
		return
	}
	envFile := ".env"
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			envFile = args[i+1]
			break
		}
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Failed to load env file %s: %v", envFile, err)
		}
	}
	envLoaded = true
}

func GetEnv(key string, fallback ...string) string {
	LoadEnvFile()
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}
