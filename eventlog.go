package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const timestampFormat = time.RFC3339Nano

// EventLog appends timestamped lines to a single shared writer.
//
// Log serializes callers on one mutex held for format, write and flush, so
// lines never interleave. Write and flush failures are dropped: logging must
// not affect request serving.
type EventLog struct {
	mu     sync.Mutex
	logger *logrus.Logger
	sink   *sink
}

// NewEventLog returns an EventLog writing to w. If w is an *os.File every
// line is flushed to disk before Log returns.
func NewEventLog(w io.Writer) *EventLog {
	s := &sink{w: w}

	logger := logrus.New()
	logger.Out = s
	logger.Formatter = &lineFormatter{}
	logger.Level = logrus.InfoLevel
	// EventLog.mu already guards the whole write path
	logger.SetNoLock()

	return &EventLog{logger: logger, sink: s}
}

// OpenEventLog creates the parent directories of path if needed and opens
// path for appending.
func OpenEventLog(path string) (*EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create log directory for %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open log file %s", path)
	}

	return NewEventLog(f), nil
}

// Log appends "<timestamp> <message>" and a newline.
func (l *EventLog) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Info(message)
}

// Logf formats according to a format specifier and calls Log.
func (l *EventLog) Logf(format string, args ...interface{}) {
	l.Log(fmt.Sprintf(format, args...))
}

// MirrorTo copies every line to out in addition to the log file.
func (l *EventLog) MirrorTo(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.AddHook(&ConsoleHook{out: out})
}

// Dropped reports how many lines failed to be written or flushed.
func (l *EventLog) Dropped() uint64 {
	return l.sink.dropped.Load()
}

// Close closes the underlying writer when it is closable. The server itself
// never calls it.
func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.sink.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// lineFormatter renders an entry as "<timestamp> <message>\n", ignoring level and fields
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Time.Format(timestampFormat))
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// sink is the fail-open writer behind the event logger
type sink struct {
	w       io.Writer
	dropped atomic.Uint64
}

func (s *sink) Write(p []byte) (int, error) {
	if _, err := s.w.Write(p); err != nil {
		s.dropped.Add(1)
		return len(p), nil
	}

	if f, ok := s.w.(*os.File); ok {
		if err := datasync(f); err != nil {
			s.dropped.Add(1)
		}
	}
	return len(p), nil
}

// ConsoleHook sends log lines to the console as well as the file
type ConsoleHook struct {
	out io.Writer
}

func (hook *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = io.WriteString(hook.out, line)
	return err
}

func (hook *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
