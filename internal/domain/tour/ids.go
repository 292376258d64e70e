package tour

import (
	"strconv"
	"strings"
)

// ParseIDs coerces raw identifiers to integers. Entries that are not numeric
// become 0, which no record can carry, so callers fail on them at the
// position they occupied in the input.
func ParseIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil || id < 0 {
			id = 0
		}
		ids = append(ids, id)
	}
	return ids
}

// Scope returns the authorization resource scope for a single tour.
func Scope(id int64) string {
	return ComponentScope + ".tour." + strconv.FormatInt(id, 10)
}
