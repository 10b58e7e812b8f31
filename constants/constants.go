package constants

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jsphweid/bgmgen/logger"
)

const (
	DefaultOutDir   = "./out"
	DefaultPort     = 8080
	DefaultBPM      = 120
	DefaultLogLevel = "info"
)

// LoadEnv reads a .env file into the environment if there is one. Values
// already set win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env", logger.Fields{"error": err})
	}
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logger.Warn("ignoring bad integer", logger.Fields{"key": key, "value": val})
		return fallback
	}
	return n
}

func GetSeed() int {
	return getInt("BGM_SEED", 0)
}

func GetOutDir() string {
	path := os.Getenv("BGM_OUT_DIR")
	if path != "" {
		return path
	}
	return DefaultOutDir
}

func GetPort() int {
	return getInt("BGM_PORT", DefaultPort)
}

func GetBPM() float64 {
	val := os.Getenv("BGM_BPM")
	if val == "" {
		return DefaultBPM
	}
	bpm, err := strconv.ParseFloat(val, 64)
	if err != nil || bpm <= 0 {
		logger.Warn("ignoring bad bpm", logger.Fields{"value": val})
		return DefaultBPM
	}
	return bpm
}

func GetLogLevel() string {
	level := os.Getenv("BGM_LOG_LEVEL")
	if level != "" {
		return level
	}
	return DefaultLogLevel
}
