package tour

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// DefaultStepTitle is the language key given to the step created with a new tour.
const DefaultStepTitle = "COM_GUIDEDTOURS_BASIC_STEP"

// StepType controls how a step advances.
type StepType int

const (
	StepTypeNext        StepType = 0
	StepTypeRedirect    StepType = 1
	StepTypeInteractive StepType = 2
)

// IsValid returns true if the step type is one of the defined constants.
func (t StepType) IsValid() bool {
	switch t {
	case StepTypeNext, StepTypeRedirect, StepTypeInteractive:
		return true
	default:
		return false
	}
}

// Step is a single stage within a Tour. A Step cannot exist without its Tour.
type Step struct {
	ID              int64
	TourID          int64
	Title           string
	Description     string
	Ordering        int
	Position        string
	Target          string
	Type            StepType
	InteractiveType int
	URL             string
	Language        string
	Note            string
	Published       State
	CreatedAt       time.Time
	CreatedBy       int64
	ModifiedAt      *time.Time
	ModifiedBy      int64
	CheckedOut      int64
	CheckedOutTime  *time.Time
}

// NewDefaultStep returns the step every brand-new tour starts with.
func NewDefaultStep(tourID int64, language string, now time.Time, actor domain.Actor) Step {
	return Step{
		TourID:      tourID,
		Title:       DefaultStepTitle,
		Description: "",
		Language:    NormalizeLanguage(language),
		Published:   StatePublished,
		CreatedAt:   now,
		CreatedBy:   actor.ID,
	}
}

// CopyTo returns an unsaved copy of the step owned by tourID. Content is
// copied verbatim and authorship restamped. The copy starts unpublished and
// not checked out.
func (s *Step) CopyTo(tourID int64, now time.Time, actor domain.Actor) Step {
	modified := now
	return Step{
		TourID:          tourID,
		Title:           s.Title,
		Description:     s.Description,
		Ordering:        s.Ordering,
		Position:        s.Position,
		Target:          s.Target,
		Type:            s.Type,
		InteractiveType: s.InteractiveType,
		URL:             s.URL,
		Language:        s.Language,
		Note:            s.Note,
		Published:       StateUnpublished,
		CreatedAt:       now,
		CreatedBy:       actor.ID,
		ModifiedAt:      &modified,
		ModifiedBy:      actor.ID,
	}
}

// Validate checks business rules for the Step entity.
func (s *Step) Validate() error {
	fields := make(map[string]string)

	if s.TourID <= 0 {
		fields["tour_id"] = fmt.Sprintf("must be positive, got %d", s.TourID)
	}
	if strings.TrimSpace(s.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !s.Type.IsValid() {
		fields["type"] = fmt.Sprintf("invalid: %d", int(s.Type))
	}
	if !IsValidLanguage(s.Language) {
		fields["language"] = fmt.Sprintf("invalid: %q", s.Language)
	}
	if !s.Published.IsValid() {
		fields["published"] = fmt.Sprintf("invalid: %d", int(s.Published))
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
