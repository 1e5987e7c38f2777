// Package graph holds the in-memory channel graph of a catalog: packages,
// their channels and the bundle entries linked by replaces/skips/skipRange
// edges.
//
// A graph is built once from decoded declarative config records and is
// read-only afterwards, so it can be shared between goroutines.
package graph

import (
	"errors"
	"slices"
)

var (
	// ErrMissingPackageRecord marks a package whose channels were supplied
	// without an olm.package record; its default channel is unknown.
	ErrMissingPackageRecord = errors.New("missing olm.package record")

	// ErrDuplicateChannel is returned when a package declares the same channel twice.
	ErrDuplicateChannel = errors.New("duplicate channel")

	// ErrChannelWithoutPackage is returned for an olm.channel record with no package.
	ErrChannelWithoutPackage = errors.New("channel without package")
)

// Entry is a bundle node of a channel.
type Entry struct {
	Name      string
	Replaces  string
	Skips     []string
	SkipRange string
}

// Channel is a named upgrade lineage. Entries keep their source order; that
// order carries no meaning for frontier computation.
type Channel struct {
	name    string
	entries []Entry
}

// NewChannel builds a standalone channel. The entries are copied.
func NewChannel(name string, entries []Entry) *Channel {
	ch := &Channel{name: name, entries: make([]Entry, len(entries))}
	for i, e := range entries {
		ch.entries[i] = e
		ch.entries[i].Skips = slices.Clone(e.Skips)
	}
	return ch
}

func (c *Channel) Name() string { return c.name }

// Entries returns a copy of the channel entries in source order.
func (c *Channel) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e
		out[i].Skips = slices.Clone(e.Skips)
	}
	return out
}

func (c *Channel) Len() int { return len(c.entries) }

// Package groups the channels of one operator package.
type Package struct {
	name           string
	defaultChannel string
	hasRecord      bool
	channels       []*Channel
	byName         map[string]*Channel
}

func (p *Package) Name() string { return p.name }

// DefaultChannel returns the authoritative channel name. ok is false when the
// package record was missing.
func (p *Package) DefaultChannel() (name string, ok bool) {
	return p.defaultChannel, p.hasRecord
}

// IsDefault reports whether channel is the package default channel.
func (p *Package) IsDefault(channel string) bool {
	return p.hasRecord && p.defaultChannel == channel
}

// Channels returns the package channels sorted by name.
func (p *Package) Channels() []*Channel {
	return slices.Clone(p.channels)
}

// Channel looks up a channel by name.
func (p *Package) Channel(name string) (*Channel, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// Catalog is the set of packages decoded from one catalog.
type Catalog struct {
	packages map[string]*Package
	names    []string
}

// Package looks up a package by name.
func (c *Catalog) Package(name string) (*Package, bool) {
	p, ok := c.packages[name]
	return p, ok
}

// Packages returns package names sorted alphabetically.
func (c *Catalog) Packages() []string {
	return slices.Clone(c.names)
}

func (c *Catalog) Len() int { return len(c.names) }
