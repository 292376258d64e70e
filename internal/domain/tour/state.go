package tour

import "fmt"

// State is the publication state shared by Tours and Steps.
type State int

const (
	StateTrashed     State = -2
	StateUnpublished State = 0
	StatePublished   State = 1
	StateArchived    State = 2
)

// IsValid returns true if the state is one of the defined constants.
func (s State) IsValid() bool {
	switch s {
	case StateTrashed, StateUnpublished, StatePublished, StateArchived:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateTrashed:
		return "trashed"
	case StateUnpublished:
		return "unpublished"
	case StatePublished:
		return "published"
	case StateArchived:
		return "archived"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
