// Package store owns the ordered watchlist: an insertion-ordered mapping
// from display name to symbol, persisted as an indented JSON object whose
// member order is significant.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

// Direction selects a reorder operation.
type Direction int

const (
	Up Direction = iota
	Down
	Top
	Bottom
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Store holds the in-memory ordered list and its backing file. Every
// mutating operation persists before returning; Open never writes, so the
// built-in defaults only reach disk on the first mutation.
type Store struct {
	path    string
	entries []types.Entry
}

// DefaultEntries is the built-in watchlist used when no file exists yet.
func DefaultEntries() []types.Entry {
	return []types.Entry{
		{Name: "VIX", Symbol: "^VIX"},
		{Name: "Philadelphia Semi", Symbol: "^SOX"},
		{Name: "SMH", Symbol: "SMH"},
		{Name: "USD/KRW", Symbol: "KRW=X"},
		{Name: "US 10Y Treasury", Symbol: "^TNX"},
		{Name: "Samsung Electronics", Symbol: "005930.KS"},
		{Name: "SK Hynix", Symbol: "000660.KS"},
		{Name: "Korea Aerospace", Symbol: "047810.KS"},
		{Name: "Hanwha Systems", Symbol: "272210.KS"},
		{Name: "Hanwha Ocean", Symbol: "042660.KS"},
		{Name: "HD KSOE", Symbol: "009540.KS"},
		{Name: "LS", Symbol: "006260.KS"},
		{Name: "Galaxia Moneytree", Symbol: "094480.KQ"},
		{Name: "NVIDIA", Symbol: "NVDA"},
		{Name: "Lockheed Martin", Symbol: "LMT"},
	}
}

// Open loads the watchlist file at path, or materializes the defaults when
// the file does not exist. A present-but-unreadable file is an error: it is
// better to fail than to silently shadow a user's list with defaults.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.entries = DefaultEntries()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	entries, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.entries = entries
	return s, nil
}

// Entries returns a copy of the ordered list.
func (s *Store) Entries() []types.Entry {
	out := make([]types.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int { return len(s.entries) }

// Symbol looks up the symbol bound to a display name.
func (s *Store) Symbol(name string) (string, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e.Symbol, true
		}
	}
	return "", false
}

// Upsert inserts or overwrites the entry for name. An existing name keeps
// its position and only has its symbol replaced; a new name is appended.
// Empty name or symbol is silently ignored, matching the add/modify form's
// behavior.
func (s *Store) Upsert(name, symbol string) error {
	if name == "" || symbol == "" {
		return nil
	}
	for i := range s.entries {
		if s.entries[i].Name == name {
			s.entries[i].Symbol = symbol
			return s.save()
		}
	}
	s.entries = append(s.entries, types.Entry{Name: name, Symbol: symbol})
	return s.save()
}

// Move reorders the selected names. Up and down are a single adjacent-swap
// bubble pass (a selected item crosses at most one neighbor per call;
// repeated calls converge). Top and bottom are one-shot stable partitions.
// An empty selection is a no-op and does not touch the file.
func (s *Store) Move(selected map[string]bool, dir Direction) error {
	if len(selected) == 0 {
		return nil
	}
	items := s.entries
	switch dir {
	case Up:
		for i := 1; i < len(items); i++ {
			if selected[items[i].Name] && !selected[items[i-1].Name] {
				items[i], items[i-1] = items[i-1], items[i]
			}
		}
	case Down:
		for i := len(items) - 2; i >= 0; i-- {
			if selected[items[i].Name] && !selected[items[i+1].Name] {
				items[i], items[i+1] = items[i+1], items[i]
			}
		}
	case Top, Bottom:
		sel := make([]types.Entry, 0, len(items))
		rest := make([]types.Entry, 0, len(items))
		for _, e := range items {
			if selected[e.Name] {
				sel = append(sel, e)
			} else {
				rest = append(rest, e)
			}
		}
		if dir == Top {
			s.entries = append(sel, rest...)
		} else {
			s.entries = append(rest, sel...)
		}
	}
	return s.save()
}

// Delete removes the selected names and returns the names actually removed
// so the session can drop their cached results as well.
func (s *Store) Delete(selected map[string]bool) ([]string, error) {
	if len(selected) == 0 {
		return nil, nil
	}
	var removed []string
	kept := s.entries[:0]
	for _, e := range s.entries {
		if selected[e.Name] {
			removed = append(removed, e.Name)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	if len(removed) == 0 {
		return nil, nil
	}
	return removed, s.save()
}

// save writes the whole list as an indented JSON object, member order
// preserved.
func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	data := encodeOrdered(s.entries)
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// encodeOrdered emits {"name": "symbol", ...} with two-space indentation.
// encoding/json maps cannot be used: they sort keys.
func encodeOrdered(entries []types.Entry) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		name, _ := json.Marshal(e.Name)
		sym, _ := json.Marshal(e.Symbol)
		buf.WriteString("  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(sym)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// decodeOrdered reads a flat JSON object in document order via the token
// stream, which is the only way encoding/json exposes member order.
func decodeOrdered(data []byte) ([]types.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var entries []types.Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		sym, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("entry %q: expected string symbol, got %v", name, valTok)
		}
		entries = append(entries, types.Entry{Name: name, Symbol: sym})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
