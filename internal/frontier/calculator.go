package frontier

import (
	"fmt"

	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
)

// Calculator computes the upgrade frontier of one channel.
//
// Implementations must be pure: the same channel and Spec always yield the
// same Frontier, and concurrent calls on shared channels are safe.
type Calculator interface {
	Compute(channel *graph.Channel, spec Spec) (Frontier, error)
}

// ComputePackage evaluates the channels of pkg selected by spec, in channel
// name order.
func ComputePackage(c Calculator, pkg *graph.Package, spec Spec) ([]Frontier, error) {
	channels := pkg.Channels()
	if !spec.AllChannels() {
		ch, ok := pkg.Channel(spec.Channel)
		if !ok {
			return nil, fmt.Errorf("%w: package %q has no channel %q", ErrChannelNotFound, pkg.Name(), spec.Channel)
		}
		channels = []*graph.Channel{ch}
	}

	out := make([]Frontier, 0, len(channels))
	for _, ch := range channels {
		f, err := c.Compute(ch, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
