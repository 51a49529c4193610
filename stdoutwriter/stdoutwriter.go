package stdoutwriter

import (
	"io"
	"os"
)

// Logger writes each log record as a separate line to the wrapped writer, os.Stderr by default.
type Logger struct {
	Out io.Writer
}

func (l Logger) Write(p []byte) (n int, err error) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	line := make([]byte, 0, len(p)+1)
	line = append(line, p...)
	line = append(line, '\n')
	if _, err := out.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}
