package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UniqueName returns name if it is not in existing. Otherwise it splits off
// any trailing integer, finds the highest trailing integer among existing
// names with the same base and returns the base followed by that value plus
// one: "idle" -> "idle1", "name-5" -> "name-6".
func UniqueName(name string, existing []string) string {
	if !slices.Contains(existing, name) {
		return name
	}

	base, increment := splitTrailingInt(name)
	for _, other := range existing {
		otherBase, otherIncrement := splitTrailingInt(other)
		if otherBase == base && otherIncrement > increment {
			increment = otherIncrement
		}
	}
	return fmt.Sprintf("%s%d", base, increment+1)
}

func splitTrailingInt(name string) (string, int) {
	base := strings.TrimRightFunc(name, func(r rune) bool { return r >= '0' && r <= '9' })
	digits := name[len(base):]
	if digits == "" {
		return base, 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return name, 0
	}
	return base, n
}
