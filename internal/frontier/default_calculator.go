package frontier

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
	"github.com/bayleafwalker/operator-upgradepath/internal/semver"
)

// DefaultCalculator prunes a channel to the entries nothing else supersedes.
//
// An entry is live when its version is at or above the starting version.
// Live entries named by another live entry's replaces or skips are dropped;
// what remains is the frontier. Removal is by name only, not reachability.
type DefaultCalculator struct{}

type liveEntry struct {
	graph.Entry
	version semver.Version
}

func NewDefault() *DefaultCalculator {
	return &DefaultCalculator{}
}

func (c *DefaultCalculator) Compute(channel *graph.Channel, spec Spec) (Frontier, error) {
	current, err := startVersion(spec)
	if err != nil {
		return Frontier{}, err
	}

	f := Frontier{
		Channel: channel.Name(),
		Start:   spec.StartToken(),
	}

	parsed := make([]liveEntry, 0, channel.Len())
	for _, e := range channel.Entries() {
		v, err := semver.Normalize(e.Name)
		if err != nil {
			f.Diagnostics.Malformed = append(f.Diagnostics.Malformed, MalformedEntry{Name: e.Name, Err: err})
			continue
		}
		parsed = append(parsed, liveEntry{Entry: e, version: v})
	}
	f.Available = sortedNames(parsed)

	live := make([]liveEntry, 0, len(parsed))
	for _, e := range parsed {
		if semver.Compare(current, e.version) > 0 {
			continue
		}
		live = append(live, e)
	}
	f.LiveCount = len(live)

	superseded := sets.New[string]()
	for _, e := range live {
		if e.Replaces != "" {
			superseded.Insert(e.Replaces)
		}
		superseded.Insert(e.Skips...)
	}

	for _, e := range live {
		if superseded.Has(e.Name) {
			continue
		}
		f.Members = append(f.Members, Member{Name: e.Name, Version: e.version})
	}
	sort.SliceStable(f.Members, func(i, j int) bool {
		if cmp := semver.Compare(f.Members[i].Version, f.Members[j].Version); cmp != 0 {
			return cmp < 0
		}
		return f.Members[i].Name < f.Members[j].Name
	})

	f.SkipRanges = aggregateSkipRanges(live, current, spec, &f.Diagnostics)

	return f, nil
}

func startVersion(spec Spec) (semver.Version, error) {
	raw := strings.TrimSpace(spec.FromVersion)
	if raw == "" {
		return semver.Zero, nil
	}
	v, err := semver.ParseLenient(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%w: package %q: %v", ErrInvalidFromVersion, spec.Name, err)
	}
	return v, nil
}

// aggregateSkipRanges keeps the first skipRange seen for each distinct lower
// bound (the text before "<") and returns the kept ranges sorted.
func aggregateSkipRanges(live []liveEntry, current semver.Version, spec Spec, diag *Diagnostics) []string {
	seen := sets.New[string]()
	var kept []string
	for _, e := range live {
		if e.SkipRange == "" {
			continue
		}
		lower := lowerBound(e.SkipRange)
		if seen.Has(lower) {
			continue
		}
		seen.Insert(lower)
		kept = append(kept, e.SkipRange)

		c, err := semver.ParseConstraint(e.SkipRange)
		if err != nil {
			diag.InvalidSkipRanges = append(diag.InvalidSkipRanges, InvalidSkipRange{
				Entry:     e.Name,
				SkipRange: e.SkipRange,
				Err:       err,
			})
			continue
		}
		if spec.StartToken() != UnknownStart && semver.Satisfies(current, c) {
			diag.CoveringSkipRanges = append(diag.CoveringSkipRanges, e.SkipRange)
		}
	}
	sort.Strings(kept)
	sort.Strings(diag.CoveringSkipRanges)
	return kept
}

func lowerBound(skipRange string) string {
	lower, _, _ := strings.Cut(skipRange, "<")
	return strings.TrimSpace(lower)
}

func sortedNames(entries []liveEntry) []string {
	sorted := make([]liveEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := semver.Compare(sorted[i].version, sorted[j].version); cmp != 0 {
			return cmp < 0
		}
		return sorted[i].Name < sorted[j].Name
	})
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.Name
	}
	return names
}
