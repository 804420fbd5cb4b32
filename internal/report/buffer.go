package report

import (
	"strings"
	"sync"
)

// Buffer is an in-memory Sink. It keeps the rendered report text plus the
// section titles in append order, which makes run assertions easy in tests.
//
// Unlike the file sink it is guarded by a mutex: tests exercise the timeout
// path, where a cancelled task body may append concurrently with the
// executor's timeout note.
type Buffer struct {
	mu     sync.Mutex
	b      strings.Builder
	titles []string
	notes  []string
}

// NewBuffer returns an empty in-memory report.
func NewBuffer() *Buffer { return &Buffer{} }

// Section appends a titled section.
func (s *Buffer) Section(title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	s.b.WriteString(renderSection(title, body))
	return nil
}

// Note appends a single line.
func (s *Buffer) Note(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, line)
	s.b.WriteString(line + "\n")
	return nil
}

// String returns the accumulated report text.
func (s *Buffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// SectionTitles returns the section titles in append order.
func (s *Buffer) SectionTitles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.titles...)
}

// Notes returns the free-standing lines in append order.
func (s *Buffer) Notes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.notes...)
}
