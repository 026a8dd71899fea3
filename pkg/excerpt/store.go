package excerpt

import (
	"fmt"
	"strings"
)

// PlaceholderPrefix starts every generated title.
const PlaceholderPrefix = "Unknown_"

// Store maps titles to fragments. Titles iterate in the order they were first
// added and fragments keep their insertion order.
type Store struct {
	order  []string
	groups map[string][]Fragment
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{groups: make(map[string][]Fragment)}
}

// Add appends f under title.
func (s *Store) Add(title string, f Fragment) {
	if _, ok := s.groups[title]; !ok {
		s.order = append(s.order, title)
	}
	s.groups[title] = append(s.groups[title], f)
}

// Titles returns the titles in first-insertion order.
func (s *Store) Titles() []string {
	return append([]string(nil), s.order...)
}

// Fragments returns the fragments stored under title.
func (s *Store) Fragments(title string) []Fragment {
	return append([]Fragment(nil), s.groups[title]...)
}

// Len returns the number of titles.
func (s *Store) Len() int { return len(s.order) }

// Group collects captures by title. Captures with no text are left out and
// use up no placeholder. Captures without a title each get the next free
// placeholder; numbering starts at 1 for every call and skips any placeholder
// name that is already a real title among the captures.
func Group(captures []Capture) *Store {
	taken := make(map[string]bool)
	for _, c := range captures {
		if c.Title != "" && strings.TrimSpace(c.Text) != "" {
			taken[c.Title] = true
		}
	}

	store := NewStore()
	next := 1
	for _, c := range captures {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		title := c.Title
		if title == "" {
			for {
				title = fmt.Sprintf("%s%d", PlaceholderPrefix, next)
				next++
				if !taken[title] {
					break
				}
			}
			taken[title] = true
		}
		store.Add(title, Fragment{Source: c.Name, Text: c.Text})
	}
	return store
}
