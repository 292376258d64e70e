package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/fatih/color"

	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
)

// tourJSON is the JSON form of a tour read from or written to the terminal.
type tourJSON struct {
	ID                     int64      `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Language               string     `json:"language"`
	Published              int        `json:"published"`
	Ordering               int        `json:"ordering"`
	Created                *time.Time `json:"created,omitempty"`
	CreatedBy              int64      `json:"created_by,omitempty"`
	Modified               *time.Time `json:"modified,omitempty"`
	ModifiedBy             int64      `json:"modified_by,omitempty"`
	CheckedOut             int64      `json:"checked_out,omitempty"`
	TitleTranslation       string     `json:"title_translation,omitempty"`
	DescriptionTranslation string     `json:"description_translation,omitempty"`
}

func toTourJSON(t *tour.Tour) tourJSON {
	out := tourJSON{
		ID:                     t.ID,
		Title:                  t.Title,
		Description:            t.Description,
		Language:               t.Language,
		Published:              int(t.Published),
		Ordering:               t.Ordering,
		CreatedBy:              t.CreatedBy,
		Modified:               t.ModifiedAt,
		ModifiedBy:             t.ModifiedBy,
		CheckedOut:             t.CheckedOut,
		TitleTranslation:       t.TitleTranslation,
		DescriptionTranslation: t.DescriptionTranslation,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		out.Created = &created
	}
	return out
}

func (j tourJSON) toDomain() tour.Tour {
	return tour.Tour{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Language:    j.Language,
		Published:   tour.State(j.Published),
		Ordering:    j.Ordering,
	}
}

// stepJSON is the JSON form of a step.
type stepJSON struct {
	ID          int64  `json:"id"`
	TourID      int64  `json:"tour_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Ordering    int    `json:"ordering"`
	Position    string `json:"position,omitempty"`
	Target      string `json:"target,omitempty"`
	Type        int    `json:"type"`
	URL         string `json:"url,omitempty"`
	Language    string `json:"language"`
	Published   int    `json:"published"`
}

func toStepJSON(s *tour.Step) stepJSON {
	return stepJSON{
		ID:          s.ID,
		TourID:      s.TourID,
		Title:       s.Title,
		Description: s.Description,
		Ordering:    s.Ordering,
		Position:    s.Position,
		Target:      s.Target,
		Type:        int(s.Type),
		URL:         s.URL,
		Language:    s.Language,
		Published:   int(s.Published),
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// printHealth writes one colored line per checker in name order and reports
// whether every checker passed.
func printHealth(w io.Writer, results map[string]error) bool {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)

	healthy := true
	for _, name := range names {
		if err := results[name]; err != nil {
			healthy = false
			_, _ = fmt.Fprintf(w, "%s %s: %v\n", color.RedString("[FAIL]"), name, err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", color.GreenString("[ OK ]"), name)
	}
	return healthy
}
