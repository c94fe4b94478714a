package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// fileWriter appends to a date-stamped log file under a fixed directory.
// When the date changes between writes it closes the current file and
// opens the next one, so long-running commands roll over at midnight.
type fileWriter struct {
	dir     string
	command string
	date    string
	file    *os.File
}

// open switches the writer to the file for the given date.
func (w *fileWriter) open(date string) error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	name := fmt.Sprintf("graft_%s_%s.log", w.command, date)
	file, err := os.OpenFile(filepath.Join(w.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	w.file = file
	w.date = date
	return nil
}

func (w *fileWriter) Write(p []byte) (int, error) {
	date := time.Now().Format("20060102")
	if w.file == nil || date != w.date {
		if err := w.open(date); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// Close releases the current log file.
func (w *fileWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// SetupFileLogger configures the default logger to write to both stdout and
// a daily log file under dir, named after the running command. The caller
// closes the returned writer when the command finishes.
func SetupFileLogger(dir, command string, level LogLevel) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	w := &fileWriter{dir: dir, command: command}
	if err := w.open(time.Now().Format("20060102")); err != nil {
		return nil, err
	}

	SetupLogger(io.MultiWriter(os.Stdout, w), level)
	return w, nil
}
