package planner

import (
	"time"

	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
	"github.com/bayleafwalker/operator-upgradepath/internal/metrics"
)

// observedCalculator records metrics for every channel computed through it.
type observedCalculator struct {
	next frontier.Calculator
	pkg  *graph.Package
}

func (o observedCalculator) Compute(channel *graph.Channel, spec frontier.Spec) (frontier.Frontier, error) {
	start := time.Now()
	f, err := o.next.Compute(channel, spec)
	if err != nil {
		return f, err
	}
	metrics.ObserveComputation(o.pkg.IsDefault(channel.Name()), len(f.Members), len(f.Diagnostics.Malformed), time.Since(start))
	return f, nil
}
