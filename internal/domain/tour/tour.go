// Package tour holds the guided-tour aggregate: a Tour and the ordered Steps
// it owns, plus the field-preparation rules applied before persistence.
package tour

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

const (
	// ComponentScope is the authorization scope for the tour collection.
	ComponentScope = "com_guidedtours"

	// DescriptionMarker collides with the language-string namespace. A
	// description containing it is stripped of markup before persistence.
	DescriptionMarker = "GUIDEDTOUR"

	maxTitleLength = 255
)

// Tour is a top-level guided-tour definition.
type Tour struct {
	ID             int64
	Title          string
	Description    string
	Language       string
	Published      State
	Ordering       int
	CreatedAt      time.Time
	CreatedBy      int64
	ModifiedAt     *time.Time
	ModifiedBy     int64
	CheckedOut     int64
	CheckedOutTime *time.Time

	// Resolved through the translator on read; never persisted.
	TitleTranslation       string
	DescriptionTranslation string
}

// IsNew reports whether the tour has not been stored yet.
func (t *Tour) IsNew() bool {
	return t.ID == 0
}

// SanitizeDescription strips markup from the description when it contains
// DescriptionMarker. It reports whether the description changed.
func (t *Tour) SanitizeDescription() bool {
	if !strings.Contains(t.Description, DescriptionMarker) {
		return false
	}
	stripped := StripTags(t.Description)
	changed := stripped != t.Description
	t.Description = stripped
	return changed
}

// PrepareCreate applies the create-time field rules. The ordering is
// supplied by the caller only when the tour has none.
func (t *Tour) PrepareCreate(now time.Time, actor domain.Actor, nextOrdering func() (int, error)) error {
	t.Title = DecodeTitle(t.Title)
	t.Language = NormalizeLanguage(t.Language)
	t.CreatedAt = now
	if t.CreatedBy == 0 {
		t.CreatedBy = actor.ID
	}
	if t.Ordering == 0 {
		next, err := nextOrdering()
		if err != nil {
			return err
		}
		t.Ordering = next
	}
	return nil
}

// PrepareUpdate applies the update-time field rules.
func (t *Tour) PrepareUpdate(now time.Time, actor domain.Actor) {
	t.Title = DecodeTitle(t.Title)
	t.Language = NormalizeLanguage(t.Language)
	t.ModifiedAt = &now
	t.ModifiedBy = actor.ID
}

// CloneAsDraft returns an unsaved, unpublished copy of the tour owned by the
// actor. Ordering is kept; ties with the source are broken by id.
func (t *Tour) CloneAsDraft(now time.Time, actor domain.Actor) Tour {
	c := *t
	c.ID = 0
	c.Published = StateUnpublished
	c.CreatedAt = now
	c.CreatedBy = actor.ID
	c.ModifiedAt = nil
	c.ModifiedBy = 0
	c.CheckedOut = 0
	c.CheckedOutTime = nil
	c.TitleTranslation = ""
	c.DescriptionTranslation = ""
	return c
}

// Validate checks business rules for the Tour entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (t *Tour) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	} else if len(t.Title) > maxTitleLength {
		fields["title"] = fmt.Sprintf("must be at most %d bytes, got %d", maxTitleLength, len(t.Title))
	}
	if !IsValidLanguage(t.Language) {
		fields["language"] = fmt.Sprintf("invalid: %q", t.Language)
	}
	if !t.Published.IsValid() {
		fields["published"] = fmt.Sprintf("invalid: %d", int(t.Published))
	}
	if t.Ordering < 0 {
		fields["ordering"] = fmt.Sprintf("must not be negative, got %d", t.Ordering)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
