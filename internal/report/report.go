// Package report renders computed upgrade paths for humans.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
)

// UnknownChannel is shown when a package has no olm.package record.
const UnknownChannel = "?"

// ChannelReport is the outcome of one channel computation.
type ChannelReport struct {
	Default  bool
	Frontier frontier.Frontier
}

// PackageReport collects every channel report of one package.
type PackageReport struct {
	Catalog string
	Name    string
	// DefaultChannel is UnknownChannel when the package record is missing.
	DefaultChannel string
	Channels       []ChannelReport
	Warnings       []string
}

// Reporter writes package reports to a shared sink. Each report is written
// with a single call so the lines of one package are never interleaved with
// another's.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewReporter returns a Reporter writing to out. verbose adds the bundle list
// of every channel.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// Catalog writes the heading that precedes the packages of a catalog.
func (r *Reporter) Catalog(ref string) error {
	return r.write("catalog " + ref + "\n")
}

// Write renders rep and writes it to the sink.
func (r *Reporter) Write(rep PackageReport) error {
	return r.write(Render(rep, r.verbose))
}

func (r *Reporter) write(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.out, s)
	return err
}

// Render formats one package report.
func Render(rep PackageReport, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", styleOperator.Render(fmt.Sprintf("operator '%s'", rep.Name)))
	fmt.Fprintf(&b, "  defaultChannel %s\n", rep.DefaultChannel)
	for _, w := range rep.Warnings {
		fmt.Fprintf(&b, "  %s\n", styleWarn.Render("warning "+w))
	}

	for _, ch := range rep.Channels {
		f := ch.Frontier
		fmt.Fprintf(&b, "  channel name %s\n", styleChannel.Render(f.Channel))

		if verbose {
			fmt.Fprintf(&b, "    bundles\n")
			for _, name := range f.Available {
				fmt.Fprintf(&b, "      %s\n", name)
			}
		} else {
			fmt.Fprintf(&b, "    %s\n", styleMuted.Render("bundles (use debug level to expand)"))
		}

		for _, m := range f.Diagnostics.Malformed {
			fmt.Fprintf(&b, "    %s\n", styleWarn.Render(fmt.Sprintf("warning skipped %s: %v", m.Name, m.Err)))
		}
		for _, s := range f.Diagnostics.InvalidSkipRanges {
			fmt.Fprintf(&b, "    %s\n", styleWarn.Render(fmt.Sprintf("warning %s: invalid skipRange %q: %v", s.Entry, s.SkipRange, s.Err)))
		}

		fmt.Fprintf(&b, "    suggested upgrade path\n")
		fmt.Fprintf(&b, "    from %s\n", stylePath.Render(f.Path()))
		if len(f.SkipRanges) > 0 {
			fmt.Fprintf(&b, "    skip_range %s\n", formatList(f.SkipRanges))
		}
		if len(f.Diagnostics.CoveringSkipRanges) > 0 {
			fmt.Fprintf(&b, "    %s\n", styleMuted.Render("start version is covered by "+formatList(f.Diagnostics.CoveringSkipRanges)))
		}
	}
	return b.String()
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
