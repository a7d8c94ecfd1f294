package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file path, relative to the working directory (project root when run via go run ./cmd/scene).
const DefaultPath = "logs/scene.txt"

// maxLines bounds the in-memory history; the HUD only ever shows the tail.
const maxLines = 512

// Level orders log severities. Lines below the logger's level are dropped.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string ("debug", "info", ...) to a Level. Unknown strings map to Info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return Debug
	case "warn", "WARN", "warning":
		return Warn
	case "error", "ERROR":
		return Error
	default:
		return Info
	}
}

// Logger stores recent lines in memory and appends every line to a file on disk.
// Info and above are echoed to the console writer.
type Logger struct {
	mu      sync.Mutex
	lines   []string
	path    string
	level   Level
	console io.Writer
	now     func() time.Time
}

// New returns a Logger writing to path and ensures its directory exists. An empty path keeps lines in memory only.
func New(path string, level Level) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{
		lines:   make([]string, 0),
		path:    path,
		level:   level,
		console: os.Stdout,
		now:     time.Now,
	}
}

// Discard returns a Logger that keeps lines in memory only and never prints. Used by tests and headless tools.
func Discard() *Logger {
	l := New("", Debug)
	l.console = nil
	return l
}

// SetConsole replaces the console writer. nil disables console echo.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	l.console = w
	l.mu.Unlock()
}

// Log appends a line at Info level. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.write(Info, line)
}

func (l *Logger) Debugf(format string, args ...any) { l.write(Debug, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.write(Info, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.write(Warn, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.write(Error, fmt.Sprintf(format, args...)) }

func (l *Logger) write(level Level, line string) {
	if level < l.level {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] [" + level.String() + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	console := l.console
	l.mu.Unlock()

	if console != nil && level >= Info {
		_, _ = io.WriteString(console, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines. n <= 0 returns none.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 0 {
		n = 0
	}
	start := 0
	if len(l.lines) > n {
		start = len(l.lines) - n
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}
