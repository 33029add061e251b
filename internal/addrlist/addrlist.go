// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package addrlist holds a named mapping from an opaque string key (an
// IPv4/IPv6 literal or a keyword token — the package itself never
// distinguishes them) to an annotation string, loaded from a comment-
// and blank-line tolerant text file.
package addrlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// List is a named key→annotation mapping. It is immutable after Load
// returns in normal operation, though Add remains available for tests
// and for callers that want to seed entries programmatically.
type List struct {
	Name        string
	Description string
	entries     map[string]string
}

// New creates an empty List.
func New(name, description string) *List {
	return &List{
		Name:        name,
		Description: description,
		entries:     make(map[string]string),
	}
}

// Load reads path line by line, trims each line, skips it if empty or
// if its first non-whitespace character is '#', and otherwise inserts
// (trimmedLine, annotation) into the list, overwriting any prior value
// for the same key. It returns the first error encountered opening or
// reading the file; the caller decides how to turn that into a fatal
// exit (see internal/errors).
func (l *List) Load(path, annotation string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.Add(line, annotation)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Contains reports whether key is present in the list.
func (l *List) Contains(key string) bool {
	_, ok := l.entries[key]
	return ok
}

// Get returns the annotation for key, and whether it was present.
func (l *List) Get(key string) (string, bool) {
	v, ok := l.entries[key]
	return v, ok
}

// Add inserts or overwrites the annotation for key.
func (l *List) Add(key, value string) {
	l.entries[key] = value
}

// Len reports the number of entries currently in the list.
func (l *List) Len() int {
	return len(l.entries)
}

// Keys returns the list's keys in unspecified order, matching the rule
// engine's own "iteration order unspecified" contract for the keyword list.
func (l *List) Keys() []string {
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	return keys
}
