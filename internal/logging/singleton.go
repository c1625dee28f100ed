package logging

import (
	"os"
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger builds the process-wide logger from config and replaces any
// previous one.
func InitLogger(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		instance.Close()
	}
	instance = logger
	return nil
}

// GetGlobalLogger returns the process-wide logger. Before InitLogger is
// called it returns a stdout logger at info level.
func GetGlobalLogger() *Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = New(os.Stdout, LevelInfo)
	}
	return instance
}
