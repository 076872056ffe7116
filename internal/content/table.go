// Package content holds the immutable category table that command replies are
// drawn from.
package content

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrEmptyTable is returned when a table, or the candidate list for a
// selection, has no entries.
var ErrEmptyTable = errors.New("content table is empty")

// Category is a named, ordered list of content strings.
type Category struct {
	Name    string
	Entries []string
}

// Picker returns a uniformly distributed index in [0, n).
type Picker func(n int) int

// Option configures a Table.
type Option func(*Table)

// WithPicker replaces the default random source.
func WithPicker(p Picker) Option {
	return func(t *Table) {
		t.pick = p
	}
}

// Table maps category names to content. It is never mutated after New
// returns, so concurrent reads need no locking.
type Table struct {
	order  []string
	byName map[string][]string
	all    []string
	pick   Picker
}

// New validates categories and builds a Table. The union of all categories
// keeps the given order.
func New(categories []Category, opts ...Option) (*Table, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		order:  make([]string, 0, len(categories)),
		byName: make(map[string][]string, len(categories)),
		pick:   rand.IntN,
	}

	for _, c := range categories {
		name := c.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("content category name must not be empty")
		}
		if strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("content category %q has leading or trailing whitespace", name)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("content category %q defined twice", name)
		}
		if len(c.Entries) == 0 {
			return nil, fmt.Errorf("content category %q: %w", name, ErrEmptyTable)
		}
		for i, e := range c.Entries {
			if e == "" {
				return nil, fmt.Errorf("content category %q: entry %d is empty", name, i)
			}
		}

		entries := append([]string(nil), c.Entries...)
		t.order = append(t.order, name)
		t.byName[name] = entries
		t.all = append(t.all, entries...)
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.pick == nil {
		t.pick = rand.IntN
	}

	return t, nil
}

// Select draws one string uniformly at random. A nil category, or one that
// is not in the table, draws from every category combined.
func (t *Table) Select(category *string) (string, error) {
	entries := t.candidates(category)
	if len(entries) == 0 {
		return "", ErrEmptyTable
	}
	return entries[t.pick(len(entries))], nil
}

// Resolve reports which category a selection would draw from; ok is false
// when the request falls back to the whole table.
func (t *Table) Resolve(category *string) (name string, ok bool) {
	if category == nil {
		return "", false
	}
	if _, found := t.byName[*category]; !found {
		return "", false
	}
	return *category, true
}

func (t *Table) candidates(category *string) []string {
	if name, ok := t.Resolve(category); ok {
		return t.byName[name]
	}
	return t.all
}

// Has reports whether name is a known category.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Categories returns category names in table order.
func (t *Table) Categories() []string {
	return append([]string(nil), t.order...)
}

// Entries returns a copy of a category's strings, or nil if unknown.
func (t *Table) Entries(name string) []string {
	entries, ok := t.byName[name]
	if !ok {
		return nil
	}
	return append([]string(nil), entries...)
}

// Len is the total number of strings across all categories.
func (t *Table) Len() int {
	return len(t.all)
}
