// Package logsink implements the append-only operator log as a flat file.
package logsink

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/log"
)

const timeLayout = "2006-01-02 15:04:05"

var _ core.LogSink = (*FileSink)(nil)

// FileSink appends timestamped lines to a log file. Append never fails
// the caller; a write error is logged and the import goes on.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a sink writing to path. The file is created lazily.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append writes one line: "[2006-01-02 15:04:05] message".
func (s *FileSink) Append(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn("failed to open operator log", "path", s.path, "err", err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format(timeLayout), message)
	if _, err := f.WriteString(line); err != nil {
		log.Warn("failed to append operator log", "path", s.path, "err", err)
	}
}

// Tail returns the last n lines, oldest first. A missing file is an empty
// log, not an error.
func (s *FileSink) Tail(n int) ([]model.LogLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []model.LogLine
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, parseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func parseLine(raw string) model.LogLine {
	if strings.HasPrefix(raw, "[") {
		if end := strings.Index(raw, "] "); end > 0 {
			if ts, err := time.ParseInLocation(timeLayout, raw[1:end], time.Local); err == nil {
				return model.LogLine{Timestamp: ts, Message: raw[end+2:]}
			}
		}
	}
	return model.LogLine{Message: raw}
}
