package ports

import "github.com/jsamuelsen11/guidedtours/internal/domain/tour"

// TourCache holds cached representations of the tour collection keyed by scope.
type TourCache interface {
	Get(scope string) ([]tour.Tour, bool)
	Set(scope string, tours []tour.Tour)
	Invalidate(scope string)
}

// Translator resolves language-string keys. Unknown keys translate to themselves.
type Translator interface {
	Translate(key string) string
}
