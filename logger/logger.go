package logger

import (
	"time"
)

// Log is log marshaled and written in to the io.Writer of the helper implementing Logger abstraction.
type Log struct {
	ID        any       `json:"_id"        yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Level     string    `json:"level"      yaml:"level"`
	Source    string    `json:"source"     yaml:"source"`
	Msg       string    `json:"msg"        yaml:"msg"`
}

// Logger provides logging methods for debug, info, warning, error and fatal.
// Implementations never receive private key material, callers log public ids only.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
}
