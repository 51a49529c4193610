package logging

import (
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bartossh/addrgen/logger"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

// Config holds configuration of the logging Helper.
type Config struct {
	Level  string `yaml:"level"`  // minimal level written: debug, info, warn, error or fatal
	Source string `yaml:"source"` // name of the program the logs come from
}

// Helper helps with writing logs to io.Writers.
// Helper implements logger.Logger interface.
// Writing is done concurrently with out blocking the current thread, call Flush before the program exits.
// Use New to create a Helper, the zero value has no writers and discards all logs.
type Helper struct {
	callOnErr func(error)
	writers   []io.Writer
	min       int
	source    string
	mux       *sync.Mutex
	wg        *sync.WaitGroup
}

// New creates new Helper.
func New(cfg Config, callOnErr func(error), writers ...io.Writer) Helper {
	lvl, ok := levels[strings.ToLower(cfg.Level)]
	if !ok {
		lvl = levels["info"]
	}
	if callOnErr == nil {
		callOnErr = func(error) {}
	}
	return Helper{
		callOnErr: callOnErr,
		writers:   writers,
		min:       lvl,
		source:    cfg.Source,
		mux:       &sync.Mutex{},
		wg:        &sync.WaitGroup{},
	}
}

// Debug writes debug log.
func (h Helper) Debug(msg string) {
	h.log("debug", msg)
}

// Info writes info log.
func (h Helper) Info(msg string) {
	h.log("info", msg)
}

// Warn writes warning log.
func (h Helper) Warn(msg string) {
	h.log("warn", msg)
}

// Error writes error log.
func (h Helper) Error(msg string) {
	h.log("error", msg)
}

// Fatal writes fatal log.
func (h Helper) Fatal(msg string) {
	h.log("fatal", msg)
}

// Flush blocks until all pending logs are written.
func (h Helper) Flush() {
	if h.wg == nil {
		return
	}
	h.wg.Wait()
}

func (h Helper) log(level, msg string) {
	if h.wg == nil || len(h.writers) == 0 || levels[level] < h.min {
		return
	}
	l := logger.Log{
		ID:        primitive.NewObjectID(),
		Level:     level,
		Source:    h.source,
		Msg:       msg,
		CreatedAt: time.Now(),
	}
	h.write(&l)
}

func (h Helper) write(l *logger.Log) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		raw, err := json.Marshal(l)
		if err != nil {
			h.callOnErr(err)
			return
		}
		h.mux.Lock()
		defer h.mux.Unlock()
		for _, w := range h.writers {
			if _, err := w.Write(raw); err != nil {
				h.callOnErr(err)
			}
		}
	}()
}
