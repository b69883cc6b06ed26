package config

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of engine performance.
var (
	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", 20)

	// SocketRate bounds how many frames per second each websocket watcher
	// receives; bursts absorb render catch-up after a stall.
	SocketRate  = rate.Limit(getEnvInt("SOCKET_FPS", 30))
	SocketBurst = getEnvInt("SOCKET_BURST", 10)

	// DataDir overrides the default profile location (~/.gridsnake).
	DataDir = os.Getenv("SNAKE_DATA_DIR")

	// DeterministicSpawns forces every spawn probability roll to succeed.
	// Useful for demos and integration tests.
	DeterministicSpawns = getEnvBool("SNAKE_DETERMINISTIC_SPAWNS", false)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvBool(varName string, defaults bool) bool {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return defaults
	}
	return boolVal
}
