// Package collect merges candidate transport strings from scanned
// images and plain-text code lists, dropping exact duplicates.
package collect

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Set is a thread-safe string set that remembers insertion order.
// Detection workers feed it concurrently; the same frame scanned twice,
// or scanned once and also transcribed into a codes file, collapses to
// one entry.
type Set struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add inserts code and reports whether it was first seen.
func (s *Set) Add(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[code]; ok {
		return false
	}
	s.seen[code] = struct{}{}
	s.order = append(s.order, code)
	return true
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Strings returns the collected codes in first-seen order.
func (s *Set) Strings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ReadCodes reads a codes file: one transport string per line. Only
// lines whose trimmed content starts with prefix are candidates;
// everything else (annotations, blank lines) is ignored.
func ReadCodes(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codes file: %w", err)
	}
	defer f.Close()

	var codes []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, prefix) {
			codes = append(codes, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read codes file %s: %w", path, err)
	}
	return codes, nil
}

// ReadList reads a list file: one filesystem path per line, blank
// lines skipped.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read list file %s: %w", path, err)
	}
	return paths, nil
}
