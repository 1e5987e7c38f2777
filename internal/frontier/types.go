package frontier

import (
	"strings"

	"github.com/bayleafwalker/operator-upgradepath/internal/semver"
)

const (
	// AllChannels selects every channel of a package.
	AllChannels = "all"

	// UnknownStart is the path start token when no fromVersion was given.
	UnknownStart = "?"

	pathSeparator = " -> "
)

// Spec selects what to evaluate for one package.
type Spec struct {
	Name string
	// Channel is a channel name or AllChannels. Empty means AllChannels.
	Channel string
	// FromVersion is the installed version. Empty means unbounded.
	FromVersion string
}

func (s Spec) AllChannels() bool {
	c := strings.TrimSpace(s.Channel)
	return c == "" || c == AllChannels
}

// StartToken is the first token of the path string.
func (s Spec) StartToken() string {
	if strings.TrimSpace(s.FromVersion) == "" {
		return UnknownStart
	}
	return strings.TrimSpace(s.FromVersion)
}

// Member is one bundle on the suggested path.
type Member struct {
	Name    string
	Version semver.Version
}

// Frontier is the suggested upgrade path for one channel. It is built once by
// a Calculator and not modified afterwards.
type Frontier struct {
	Channel string
	Start   string
	Members []Member
	// SkipRanges holds the retained skipRange strings, one per distinct lower
	// bound, sorted lexicographically.
	SkipRanges []string
	// Available lists every parseable bundle of the channel, oldest first.
	Available []string
	// LiveCount is the number of entries at or above the starting version.
	LiveCount   int
	Diagnostics Diagnostics
}

// Names returns the member names in path order.
func (f Frontier) Names() []string {
	names := make([]string, len(f.Members))
	for i, m := range f.Members {
		names[i] = m.Name
	}
	return names
}

// Path renders "<start> -> a -> b".
func (f Frontier) Path() string {
	return strings.Join(append([]string{f.Start}, f.Names()...), pathSeparator)
}

func (f Frontier) Empty() bool { return len(f.Members) == 0 }

// Diagnostics captures recoverable problems found while computing a frontier.
type Diagnostics struct {
	Malformed         []MalformedEntry
	InvalidSkipRanges []InvalidSkipRange
	// CoveringSkipRanges are retained ranges that include the starting
	// version: the bundle declaring them can be installed directly.
	CoveringSkipRanges []string
}

func (d Diagnostics) Empty() bool {
	return len(d.Malformed) == 0 && len(d.InvalidSkipRanges) == 0
}

// MalformedEntry is a bundle excluded because its name carries no parseable version.
type MalformedEntry struct {
	Name string
	Err  error
}

// InvalidSkipRange is a retained skipRange that is not a valid semver constraint.
type InvalidSkipRange struct {
	Entry     string
	SkipRange string
	Err       error
}
