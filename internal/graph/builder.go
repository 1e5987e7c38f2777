package graph

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/operator-upgradepath/internal/declcfg"
)

// Build assembles a Catalog from decoded records. Records of other schemas
// are ignored. The first olm.package record for a name wins.
func Build(records []declcfg.Record) (*Catalog, error) {
	cat := &Catalog{packages: make(map[string]*Package)}

	pkg := func(name string) *Package {
		p, ok := cat.packages[name]
		if !ok {
			p = &Package{name: name, byName: make(map[string]*Channel)}
			cat.packages[name] = p
			cat.names = append(cat.names, name)
		}
		return p
	}

	for _, rec := range records {
		switch r := rec.(type) {
		case declcfg.PackageRecord:
			p := pkg(r.Name)
			if p.hasRecord {
				continue
			}
			p.defaultChannel = r.DefaultChannel
			p.hasRecord = true

		case declcfg.ChannelRecord:
			if strings.TrimSpace(r.Package) == "" {
				return nil, fmt.Errorf("%w: %q", ErrChannelWithoutPackage, r.Name)
			}
			p := pkg(r.Package)
			if _, exists := p.byName[r.Name]; exists {
				return nil, fmt.Errorf("%w: package %q channel %q", ErrDuplicateChannel, r.Package, r.Name)
			}
			ch := &Channel{name: r.Name, entries: make([]Entry, 0, len(r.Entries))}
			for _, e := range r.Entries {
				ch.entries = append(ch.entries, Entry{
					Name:      e.Name,
					Replaces:  e.Replaces,
					Skips:     dedupe(e.Skips),
					SkipRange: strings.TrimSpace(e.SkipRange),
				})
			}
			p.byName[r.Name] = ch
			p.channels = append(p.channels, ch)
		}
	}

	for _, p := range cat.packages {
		sort.Slice(p.channels, func(i, j int) bool {
			return p.channels[i].name < p.channels[j].name
		})
	}
	sort.Strings(cat.names)

	return cat, nil
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return sets.List(sets.New(names...))
}
