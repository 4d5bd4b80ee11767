package logger

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger is a small leveled logger. Info/Warn/Debug go to stdout, Error to
// stderr.
type Logger struct {
	out *log.Logger
	err *log.Logger
}

func New() *Logger {
	return &Logger{
		out: log.New(os.Stdout, "", 0),
		err: log.New(os.Stderr, "", 0),
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Printf("%s INFO  %s", stamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Printf("%s WARN  %s", stamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf("%s ERROR %s", stamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.out.Printf("%s DEBUG %s", stamp(), fmt.Sprintf(format, args...))
}

func stamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
