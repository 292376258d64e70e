package tour

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

var (
	testNow   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testActor = domain.Actor{ID: 42, Name: "editor"}
)

// requireValidationField asserts err wraps domain.ErrValidation and names field.
func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func validTour() Tour {
	return Tour{Title: "Welcome", Language: LanguageAll, Published: StatePublished, Ordering: 1}
}

func TestTour_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Tour)
		field  string
	}{
		{name: "empty title", mutate: func(tr *Tour) { tr.Title = "  " }, field: "title"},
		{name: "title too long", mutate: func(tr *Tour) { tr.Title = strings.Repeat("x", 256) }, field: "title"},
		{name: "bad language", mutate: func(tr *Tour) { tr.Language = "en_gb" }, field: "language"},
		{name: "empty language", mutate: func(tr *Tour) { tr.Language = "" }, field: "language"},
		{name: "unknown state", mutate: func(tr *Tour) { tr.Published = 7 }, field: "published"},
		{name: "negative ordering", mutate: func(tr *Tour) { tr.Ordering = -1 }, field: "ordering"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := validTour()
			tt.mutate(&tr)
			requireValidationField(t, tr.Validate(), tt.field)
		})
	}
}

func TestTour_ValidateAcceptsValid(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"*", "en-GB", "fil-PH"} {
		tr := validTour()
		tr.Language = lang
		if err := tr.Validate(); err != nil {
			t.Errorf("Validate() with language %q = %v, want nil", lang, err)
		}
	}
}

func TestTour_SanitizeDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		want        string
		changed     bool
	}{
		{
			name:        "marker with markup is stripped",
			description: "<p>COM_GUIDEDTOURS_TOUR_<em>X</em>_GUIDEDTOUR</p>",
			want:        "COM_GUIDEDTOURS_TOUR_X_GUIDEDTOUR",
			changed:     true,
		},
		{
			name:        "markup without marker is kept",
			description: "<p>Hello</p>",
			want:        "<p>Hello</p>",
		},
		{
			name:        "marker without markup is unchanged",
			description: "COM_GUIDEDTOURS_GUIDEDTOUR_DESC",
			want:        "COM_GUIDEDTOURS_GUIDEDTOUR_DESC",
		},
		{
			name:        "lowercase marker does not trigger",
			description: "<b>guidedtour</b>",
			want:        "<b>guidedtour</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := Tour{Description: tt.description}
			if got := tr.SanitizeDescription(); got != tt.changed {
				t.Errorf("SanitizeDescription() = %v, want %v", got, tt.changed)
			}
			if tr.Description != tt.want {
				t.Errorf("Description = %q, want %q", tr.Description, tt.want)
			}
		})
	}
}

func TestTour_PrepareCreate(t *testing.T) {
	t.Parallel()

	tr := Tour{Title: "A &quot;quoted&quot; tour"}
	err := tr.PrepareCreate(testNow, testActor, func() (int, error) { return 4, nil })
	if err != nil {
		t.Fatalf("PrepareCreate() error = %v", err)
	}

	if tr.Title != `A "quoted" tour` {
		t.Errorf("Title = %q, want decoded quotes", tr.Title)
	}
	if tr.Ordering != 4 {
		t.Errorf("Ordering = %d, want 4", tr.Ordering)
	}
	if tr.Language != LanguageAll {
		t.Errorf("Language = %q, want %q", tr.Language, LanguageAll)
	}
	if !tr.CreatedAt.Equal(testNow) || tr.CreatedBy != testActor.ID {
		t.Errorf("created = %v/%d, want %v/%d", tr.CreatedAt, tr.CreatedBy, testNow, testActor.ID)
	}
	if tr.ModifiedAt != nil {
		t.Errorf("ModifiedAt = %v, want nil on create", tr.ModifiedAt)
	}
}

func TestTour_PrepareCreateKeepsOrdering(t *testing.T) {
	t.Parallel()

	tr := Tour{Title: "t", Ordering: 9}
	err := tr.PrepareCreate(testNow, testActor, func() (int, error) {
		t.Fatal("nextOrdering must not be called when ordering is set")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("PrepareCreate() error = %v", err)
	}
	if tr.Ordering != 9 {
		t.Errorf("Ordering = %d, want 9", tr.Ordering)
	}
}

func TestTour_PrepareCreateOrderingError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tr := Tour{Title: "t"}
	if err := tr.PrepareCreate(testNow, testActor, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("PrepareCreate() error = %v, want %v", err, boom)
	}
}

func TestTour_PrepareUpdate(t *testing.T) {
	t.Parallel()

	created := testNow.Add(-time.Hour)
	tr := Tour{ID: 3, Title: "it&#039;s", CreatedAt: created, CreatedBy: 1}
	tr.PrepareUpdate(testNow, testActor)

	if tr.Title != "it's" {
		t.Errorf("Title = %q, want %q", tr.Title, "it's")
	}
	if tr.ModifiedAt == nil || !tr.ModifiedAt.Equal(testNow) {
		t.Errorf("ModifiedAt = %v, want %v", tr.ModifiedAt, testNow)
	}
	if tr.ModifiedBy != testActor.ID {
		t.Errorf("ModifiedBy = %d, want %d", tr.ModifiedBy, testActor.ID)
	}
	if !tr.CreatedAt.Equal(created) || tr.CreatedBy != 1 {
		t.Error("PrepareUpdate must not touch creation metadata")
	}
}

func TestTour_CloneAsDraft(t *testing.T) {
	t.Parallel()

	checkedOut := testNow.Add(-time.Minute)
	modified := testNow.Add(-time.Hour)
	src := Tour{
		ID: 5, Title: "Src", Description: "d", Language: "en-GB", Published: StatePublished, Ordering: 3,
		CreatedBy: 1, ModifiedAt: &modified, ModifiedBy: 2, CheckedOut: 9, CheckedOutTime: &checkedOut,
	}

	c := src.CloneAsDraft(testNow, testActor)

	if c.ID != 0 || c.Published != StateUnpublished {
		t.Errorf("clone id/published = %d/%v, want 0/unpublished", c.ID, c.Published)
	}
	if c.Title != src.Title || c.Description != src.Description || c.Language != src.Language || c.Ordering != src.Ordering {
		t.Errorf("clone content = %+v, want content of %+v", c, src)
	}
	if c.CreatedBy != testActor.ID || !c.CreatedAt.Equal(testNow) {
		t.Errorf("clone created = %v/%d, want %v/%d", c.CreatedAt, c.CreatedBy, testNow, testActor.ID)
	}
	if c.ModifiedAt != nil || c.CheckedOut != 0 || c.CheckedOutTime != nil {
		t.Errorf("clone carries modification or checkout metadata: %+v", c)
	}
	if src.ID != 5 || src.Published != StatePublished {
		t.Error("CloneAsDraft mutated the source")
	}
}

func TestScope(t *testing.T) {
	t.Parallel()

	if got := Scope(12); got != "com_guidedtours.tour.12" {
		t.Errorf("Scope(12) = %q", got)
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	got := ParseIDs([]string{"3", " 7 ", "abc", "-2", "0"})
	want := []int64{3, 7, 0, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("ParseIDs len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseIDs[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := map[State]string{
		StateTrashed:     "trashed",
		StateUnpublished: "unpublished",
		StatePublished:   "published",
		StateArchived:    "archived",
		State(5):         "state(5)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
