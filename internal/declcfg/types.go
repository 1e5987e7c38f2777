// Package declcfg decodes OLM declarative config documents into a closed set
// of record types. Schema dispatch happens once, here; the rest of the
// program switches on Go types, never on schema strings.
package declcfg

const (
	SchemaPackage = "olm.package"
	SchemaChannel = "olm.channel"
)

// Record is one decoded declarative config document. It is implemented only
// by PackageRecord, ChannelRecord and OtherRecord.
type Record interface {
	Schema() string
	isRecord()
}

// PackageRecord is an olm.package document.
type PackageRecord struct {
	Name           string `json:"name"`
	DefaultChannel string `json:"defaultChannel"`
	Description    string `json:"description,omitempty"`
}

// ChannelRecord is an olm.channel document.
type ChannelRecord struct {
	Name    string         `json:"name"`
	Package string         `json:"package"`
	Entries []ChannelEntry `json:"entries"`
}

// ChannelEntry is a bundle node inside a channel.
type ChannelEntry struct {
	Name      string   `json:"name"`
	Replaces  string   `json:"replaces,omitempty"`
	Skips     []string `json:"skips,omitempty"`
	SkipRange string   `json:"skipRange,omitempty"`
}

// OtherRecord is any document whose schema the engine does not use
// (olm.bundle, olm.deprecations, custom schemas).
type OtherRecord struct {
	SchemaName string
	Package    string
	Name       string
}

func (PackageRecord) Schema() string { return SchemaPackage }
func (ChannelRecord) Schema() string { return SchemaChannel }
func (r OtherRecord) Schema() string { return r.SchemaName }
func (PackageRecord) isRecord() {}
func (ChannelRecord) isRecord() {}
func (OtherRecord) isRecord() {}
