package main

import (
	"log"
	"os"
)

// Logger is the minimal logging surface the command needs.
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

func newLogger(verbose bool) Logger {
	return &stdLogger{l: log.New(os.Stderr, "statichuff: ", log.LstdFlags), verbose: verbose}
}

func (s *stdLogger) Infof(format string, v ...any) {
	if s.verbose {
		s.l.Printf("[INFO] "+format, v...)
	}
}

func (s *stdLogger) Errorf(format string, v ...any) {
	s.l.Printf("[ERROR] "+format, v...)
}
