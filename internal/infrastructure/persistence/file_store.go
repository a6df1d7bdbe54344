package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps scores as newline-separated integers
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on first Record.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the table. A missing file is an empty table.
func (s *FileStore) Load() (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open hiscores: %w", err)
	}
	defer f.Close()

	table := NewTable()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		score, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hiscore %q: %w", line, err)
		}
		table.Add(score)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hiscores: %w", err)
	}
	return table, nil
}

// Record adds score to the table and rewrites the file if it qualified
func (s *FileStore) Record(_ string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return err
	}
	if !table.Add(score) {
		return nil
	}

	var b strings.Builder
	for _, v := range table.Scores() {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('\n')
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create hiscore dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write hiscores: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open
func (s *FileStore) Close() error { return nil }
