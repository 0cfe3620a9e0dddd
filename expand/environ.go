// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"slices"
	"strings"

	"github.com/mvdan-style/posh/vars"
)

// SeedOSEnviron imports pairs (as returned by os.Environ) into set as
// exported scalar variables, the way a shell's startup populates its
// initial VariableSet from the process environment. Malformed entries
// (no "=") are skipped; when a name repeats, the last pair wins, mirroring
// how a real process environment never actually contains duplicates but
// a defensively-written importer should tolerate one that does.
func SeedOSEnviron(set *vars.Set, pairs []string) error {
	for name, value := range dedupeEnvPairs(pairs) {
		if _, err := set.Assign(vars.Global, name, vars.Variable{
			Value:      vars.Scalar(value),
			IsExported: true,
		}); err != nil {
			return err
		}
	}
	return nil
}

// dedupeEnvPairs sorts pairs by name and keeps only the last occurrence
// of each name, adapted from the teacher's listEnvironWithUpper
// dedup-by-sort approach (environ.go's ListEnviron), but returning a
// name->value map instead of a re-serialized "name=value" list since the
// caller here is vars.Set.Assign rather than another Environ.
func dedupeEnvPairs(pairs []string) map[string]string {
	type pair struct{ name, value string }
	var clean []pair
	for _, s := range pairs {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			continue
		}
		clean = append(clean, pair{name, value})
	}
	slices.SortStableFunc(clean, func(a, b pair) int {
		return strings.Compare(a.name, b.name)
	})
	out := make(map[string]string, len(clean))
	for _, p := range clean {
		out[p.name] = p.value
	}
	return out
}
