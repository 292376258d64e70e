package postgres

import (
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
)

// tourRow maps the guidedtours table.
type tourRow struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Title          string    `gorm:"size:255;not null"`
	Description    string    `gorm:"type:text;not null"`
	Ordering       int       `gorm:"not null;index:idx_guidedtours_ordering"`
	Language       string    `gorm:"size:7;not null"`
	Published      int       `gorm:"not null"`
	Created        time.Time `gorm:"not null"`
	CreatedBy      int64     `gorm:"not null"`
	Modified       *time.Time
	ModifiedBy     int64 `gorm:"not null"`
	CheckedOut     int64 `gorm:"not null"`
	CheckedOutTime *time.Time
}

func (tourRow) TableName() string { return "guidedtours" }

// stepRow maps the guidedtour_steps table.
type stepRow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	TourID          int64     `gorm:"not null;index:idx_guidedtour_steps_tour"`
	Title           string    `gorm:"size:255;not null"`
	Description     string    `gorm:"type:text;not null"`
	Ordering        int       `gorm:"not null"`
	Position        string    `gorm:"size:255;not null"`
	Target          string    `gorm:"size:255;not null"`
	Type            int       `gorm:"not null"`
	InteractiveType int       `gorm:"not null"`
	URL             string    `gorm:"column:url;size:255;not null"`
	Language        string    `gorm:"size:7;not null"`
	Note            string    `gorm:"size:255;not null"`
	Published       int       `gorm:"not null"`
	Created         time.Time `gorm:"not null"`
	CreatedBy       int64     `gorm:"not null"`
	Modified        *time.Time
	ModifiedBy      int64 `gorm:"not null"`
	CheckedOut      int64 `gorm:"not null"`
	CheckedOutTime  *time.Time
}

func (stepRow) TableName() string { return "guidedtour_steps" }

// tourUpdateColumns are the columns UpdateTour writes. Creation and
// check-out metadata are owned elsewhere.
var tourUpdateColumns = []string{
	"title", "description", "ordering", "language", "published", "modified", "modified_by",
}

func toTourRow(t *tour.Tour) tourRow {
	return tourRow{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Ordering:       t.Ordering,
		Language:       t.Language,
		Published:      int(t.Published),
		Created:        t.CreatedAt,
		CreatedBy:      t.CreatedBy,
		Modified:       t.ModifiedAt,
		ModifiedBy:     t.ModifiedBy,
		CheckedOut:     t.CheckedOut,
		CheckedOutTime: t.CheckedOutTime,
	}
}

func (r *tourRow) toDomain() tour.Tour {
	return tour.Tour{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Ordering:       r.Ordering,
		Language:       r.Language,
		Published:      tour.State(r.Published),
		CreatedAt:      r.Created,
		CreatedBy:      r.CreatedBy,
		ModifiedAt:     r.Modified,
		ModifiedBy:     r.ModifiedBy,
		CheckedOut:     r.CheckedOut,
		CheckedOutTime: r.CheckedOutTime,
	}
}

func toStepRow(s *tour.Step) stepRow {
	return stepRow{
		ID:              s.ID,
		TourID:          s.TourID,
		Title:           s.Title,
		Description:     s.Description,
		Ordering:        s.Ordering,
		Position:        s.Position,
		Target:          s.Target,
		Type:            int(s.Type),
		InteractiveType: s.InteractiveType,
		URL:             s.URL,
		Language:        s.Language,
		Note:            s.Note,
		Published:       int(s.Published),
		Created:         s.CreatedAt,
		CreatedBy:       s.CreatedBy,
		Modified:        s.ModifiedAt,
		ModifiedBy:      s.ModifiedBy,
		CheckedOut:      s.CheckedOut,
		CheckedOutTime:  s.CheckedOutTime,
	}
}

func (r *stepRow) toDomain() tour.Step {
	return tour.Step{
		ID:              r.ID,
		TourID:          r.TourID,
		Title:           r.Title,
		Description:     r.Description,
		Ordering:        r.Ordering,
		Position:        r.Position,
		Target:          r.Target,
		Type:            tour.StepType(r.Type),
		InteractiveType: r.InteractiveType,
		URL:             r.URL,
		Language:        r.Language,
		Note:            r.Note,
		Published:       tour.State(r.Published),
		CreatedAt:       r.Created,
		CreatedBy:       r.CreatedBy,
		ModifiedAt:      r.Modified,
		ModifiedBy:      r.ModifiedBy,
		CheckedOut:      r.CheckedOut,
		CheckedOutTime:  r.CheckedOutTime,
	}
}
