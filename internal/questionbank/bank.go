// Package questionbank loads the static question catalog and answers
// category-listing, sampling and statistics queries over it.
package questionbank

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
)

// Question is a single multiple-choice item.
type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// CatalogEntry is a fixed (stage, topic, level) bucket of questions,
// the unit of sampling for a training session.
type CatalogEntry struct {
	Stage     string     `json:"stage"`
	Topic     string     `json:"topic"`
	Level     string     `json:"level"`
	Questions []Question `json:"questions"`
}

// Category groups catalog entries sharing a (stage, topic) pair.
type Category struct {
	Stage  string
	Topic  string
	Levels []string
}

// Statistics summarizes the catalog by stage and topic.
type Statistics struct {
	TotalQuestions int
	ByStage        map[string]int
	ByTopic        map[string]int
}

// Status is the catalog load state. Queries against a bank that is not
// Ready return empty results rather than blocking or failing.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Bank holds the loaded catalog. Load once, then query; the bank is
// read-only after a successful load.
type Bank struct {
	source Source
	rng    *rand.Rand

	status  Status
	loadErr error
	entries []CatalogEntry
}

// New creates a Bank reading from source and sampling with rng.
func New(source Source, rng *rand.Rand) *Bank {
	return &Bank{source: source, rng: rng}
}

// Load fetches, validates and decodes the catalog. On any failure the
// bank transitions to StatusFailed and all queries return empty results;
// the cause is kept for the host to report.
func (b *Bank) Load(ctx context.Context) error {
	data, err := b.source.Fetch(ctx)
	if err != nil {
		return b.fail(fmt.Errorf("fetch catalog: %w", err))
	}

	if err := validateCatalog(data); err != nil {
		return b.fail(fmt.Errorf("validate catalog: %w", err))
	}

	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return b.fail(fmt.Errorf("decode catalog: %w", err))
	}

	b.entries = entries
	b.status = StatusReady
	b.loadErr = nil
	return nil
}

func (b *Bank) fail(err error) error {
	b.status = StatusFailed
	b.loadErr = err
	b.entries = nil
	return err
}

// Status returns the current load state.
func (b *Bank) Status() Status {
	return b.status
}

// Err returns the load failure cause, or nil.
func (b *Bank) Err() error {
	return b.loadErr
}

// Categories lists distinct (stage, topic) pairs in first-seen catalog
// order. Levels are collected from every entry sharing the pair, in
// catalog order, duplicates included.
func (b *Bank) Categories() []Category {
	if b.status != StatusReady {
		return nil
	}

	var cats []Category
	index := make(map[string]int)
	for _, e := range b.entries {
		key := e.Stage + "\x00" + e.Topic
		i, ok := index[key]
		if !ok {
			i = len(cats)
			index[key] = i
			cats = append(cats, Category{Stage: e.Stage, Topic: e.Topic})
		}
		cats[i].Levels = append(cats[i].Levels, e.Level)
	}
	return cats
}

// Sample draws min(count, available) questions without replacement from
// the entry exactly matching (stage, topic, level), in random order.
// A non-matching triple yields an empty result.
func (b *Bank) Sample(stage, topic, lvl string, count int) []Question {
	if b.status != StatusReady || count <= 0 {
		return nil
	}

	entry := b.find(stage, topic, lvl)
	if entry == nil || len(entry.Questions) == 0 {
		return nil
	}

	shuffled := make([]Question, len(entry.Questions))
	copy(shuffled, entry.Questions)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func (b *Bank) find(stage, topic, lvl string) *CatalogEntry {
	for i := range b.entries {
		e := &b.entries[i]
		if e.Stage == stage && e.Topic == topic && e.Level == lvl {
			return e
		}
	}
	return nil
}

// Stats sums question counts per catalog entry, grouped by stage and by
// topic independently.
func (b *Bank) Stats() Statistics {
	stats := Statistics{
		ByStage: make(map[string]int),
		ByTopic: make(map[string]int),
	}
	if b.status != StatusReady {
		return stats
	}
	for _, e := range b.entries {
		n := len(e.Questions)
		stats.TotalQuestions += n
		stats.ByStage[e.Stage] += n
		stats.ByTopic[e.Topic] += n
	}
	return stats
}
