package catalog

import (
	"fmt"
	"io"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// DuplicateTargets returns the sorted target identifiers named by more than one pair.
// Migrating several sources into one target is allowed, but usually a typo.
func DuplicateTargets(pairs []Pair) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	dupes := mapset.NewThreadUnsafeSet[string]()

	for _, pair := range pairs {
		if !seen.Add(pair.Target) {
			dupes.Add(pair.Target)
		}
	}

	output := dupes.ToSlice()
	sort.Strings(output)

	return output
}

// PrintPairs writes the parsed pairs in file order, followed by any duplicate targets.
func PrintPairs(w io.Writer, pairs []Pair) {
	switch n := len(pairs); n {
	case 0:
		fmt.Fprintln(w, "No repository pairs found")
		return
	case 1:
		fmt.Fprintln(w, "Found 1 repository pair:")
	default:
		fmt.Fprintf(w, "Found %d repository pairs:\n", n)
	}

	for _, pair := range pairs {
		fmt.Fprintf(w, "  %4d  %s -> %s\n", pair.Line, pair.Source, pair.Target)
	}

	if dupes := DuplicateTargets(pairs); len(dupes) > 0 {
		fmt.Fprintf(w, "\nTargets named more than once:\n")
		for _, target := range dupes {
			fmt.Fprintf(w, "  %s\n", target)
		}
	}
}
