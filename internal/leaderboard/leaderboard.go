// Package leaderboard keeps the device-local high score table.
//
// The table is a single JSON document stored under one durable key. It is
// read fail-soft: anything missing or malformed reads as an empty table, and
// entries that do not look like {"name": string, "bestScore": number} are
// dropped. Every update persists the whole table.
package leaderboard

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultKey is the durable key holding the table.
const DefaultKey = "mcm_leaderboard_v1"

// DefaultCapacity is the maximum number of entries kept.
const DefaultCapacity = 10

// Entry is one player's best score.
type Entry struct {
	Name      string `json:"name"`
	BestScore int    `json:"bestScore"`
}

// Apply returns the table after recording score for name. An existing entry
// is only raised, never lowered; a new name is appended. The result is
// sorted by score descending (ties keep their previous order) and truncated
// to capacity. entries is not modified.
func Apply(entries []Entry, name string, score, capacity int) []Entry {
	out := make([]Entry, len(entries), len(entries)+1)
	copy(out, entries)

	found := false
	for i := range out {
		if out[i].Name == name {
			found = true
			if score > out[i].BestScore {
				out[i].BestScore = score
			}
			break
		}
	}
	if !found {
		out = append(out, Entry{Name: name, BestScore: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BestScore > out[j].BestScore
	})
	if capacity > 0 && len(out) > capacity {
		out = out[:capacity]
	}
	return out
}

// Decode parses a stored table. It never fails: unparseable input yields an
// empty table and invalid entries are skipped.
func Decode(raw string, capacity int) []Entry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Entry{}
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok {
			continue
		}
		score, ok := obj["bestScore"].(float64)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: name, BestScore: int(score)})
		if capacity > 0 && len(entries) == capacity {
			break
		}
	}
	return entries
}

// Encode serializes a table for storage.
func Encode(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Top returns at most n entries from the head of the table.
func Top(entries []Entry, n int) []Entry {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// Rank returns the 1-based position of name in the table, or 0.
func Rank(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}
