package project

import (
	"fmt"
	"regexp"
	"strconv"
)

var copySuffix = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// splitCopySuffix splits "Alpha (3)" into its base name and suffix number.
// Names without a trailing " (n)" are returned unchanged.
func splitCopySuffix(name string) (base string, n int, ok bool) {
	m := copySuffix.FindStringSubmatch(name)
	if m == nil {
		return name, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return name, 0, false
	}
	return m[1], n, true
}

// NextCopyName derives the name for a duplicate of source: the source's base
// name with the smallest positive " (n)" suffix not already taken among
// existing. A bare base name counts as suffix zero, so the first copy of
// "Alpha" is "Alpha (1)" and gaps in the numbering are reused.
func NextCopyName(source string, existing []string) string {
	base, _, _ := splitCopySuffix(source)

	used := make(map[int]bool, len(existing))
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
		if name == base {
			used[0] = true
			continue
		}
		if b, n, ok := splitCopySuffix(name); ok && b == base {
			used[n] = true
		}
	}

	n := 1
	for used[n] {
		n++
	}

	// Suffix bookkeeping can miss oddly formatted names, so keep bumping
	// until the candidate is genuinely free.
	candidate := fmt.Sprintf("%s (%d)", base, n)
	for taken[candidate] {
		n++
		candidate = fmt.Sprintf("%s (%d)", base, n)
	}
	return candidate
}
