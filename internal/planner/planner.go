// Package planner evaluates the packages selected by a filter config against
// the catalog cache and produces reports and the manifest selections.
package planner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
	"github.com/bayleafwalker/operator-upgradepath/internal/manifest"
	"github.com/bayleafwalker/operator-upgradepath/internal/report"
)

// Options tune a Planner.
type Options struct {
	// Workers bounds the number of packages evaluated concurrently.
	Workers      int
	APIVersion   string
	OutputDir    string
	SkipManifest bool
}

// Planner runs the frontier calculator over every package a filter selects.
type Planner struct {
	fs       afero.Fs
	cache    *catalog.Cache
	calc     frontier.Calculator
	reporter *report.Reporter
	log      logr.Logger
	opts     Options
}

func New(fsys afero.Fs, cache *catalog.Cache, calc frontier.Calculator, reporter *report.Reporter, log logr.Logger, opts Options) *Planner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Planner{
		fs:       fsys,
		cache:    cache,
		calc:     calc,
		reporter: reporter,
		log:      log,
		opts:     opts,
	}
}

// Evaluation is the outcome of evaluating one package of one catalog.
type Evaluation struct {
	Report  report.PackageReport
	Package *graph.Package
	// ChannelFound is false when the requested channel does not exist.
	ChannelFound bool
	// Selection holds the default channel frontier, in path order. It is
	// empty when the default channel is unknown or was not evaluated.
	Selection []string
}

// Result summarizes a Run.
type Result struct {
	Reports    []report.PackageReport
	Selections map[string][]string
	// ManifestPath is empty when the manifest was not written.
	ManifestPath string
}

// Evaluate computes the frontier of the channels spec selects.
func (p *Planner) Evaluate(catalogRef string, spec frontier.Spec) (*Evaluation, error) {
	records, err := p.cache.LoadPackage(catalogRef, spec.Name)
	if err != nil {
		return nil, err
	}
	cat, err := graph.Build(records)
	if err != nil {
		return nil, fmt.Errorf("package %q: %w", spec.Name, err)
	}
	pkg, ok := cat.Package(spec.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no channels in %s", catalog.ErrPackageNotFound, spec.Name, catalogRef)
	}

	ev := &Evaluation{
		Package:      pkg,
		ChannelFound: true,
		Report: report.PackageReport{
			Catalog:        catalogRef,
			Name:           pkg.Name(),
			DefaultChannel: report.UnknownChannel,
		},
	}
	defaultChannel, hasRecord := pkg.DefaultChannel()
	if hasRecord {
		ev.Report.DefaultChannel = defaultChannel
	} else {
		ev.Report.Warnings = append(ev.Report.Warnings, graph.ErrMissingPackageRecord.Error()+": default channel unknown, package left out of the manifest")
	}

	frontiers, err := frontier.ComputePackage(observedCalculator{next: p.calc, pkg: pkg}, pkg, spec)
	switch {
	case errors.Is(err, frontier.ErrChannelNotFound):
		ev.ChannelFound = false
		ev.Report.Warnings = append(ev.Report.Warnings, fmt.Sprintf("channel %q not found", spec.Channel))
		return ev, nil
	case err != nil:
		return nil, err
	}

	for _, f := range frontiers {
		isDefault := pkg.IsDefault(f.Channel)
		ev.Report.Channels = append(ev.Report.Channels, report.ChannelReport{Default: isDefault, Frontier: f})
		if isDefault {
			ev.Selection = f.Names()
		}
	}
	return ev, nil
}

// Run evaluates every package of every catalog in cfg, writes the reports as
// packages complete and finally writes the manifest. Package failures do not
// stop the run; they are returned together once all packages are done.
func (p *Planner) Run(ctx context.Context, cfg *v1alpha1.FilterConfig) (*Result, error) {
	res := &Result{Selections: make(map[string][]string)}
	var failures []error

	for _, ref := range cfg.Catalogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.reporter.Catalog(ref); err != nil {
			return nil, err
		}

		specs, err := p.specs(ref, cfg)
		if err != nil {
			return nil, err
		}

		evs, errs := p.evaluateAll(ctx, ref, specs)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		failures = append(failures, errs...)

		for _, ev := range evs {
			res.Reports = append(res.Reports, ev.Report)
			if len(ev.Selection) > 0 {
				res.Selections[ev.Report.Name] = mergeSelection(res.Selections[ev.Report.Name], ev.Selection)
			}
		}
	}

	if !p.opts.SkipManifest {
		path, err := p.writeManifest(res.Selections)
		if err != nil {
			return nil, err
		}
		res.ManifestPath = path
		p.log.Info("wrote manifest", "path", path, "packages", len(res.Selections))
	}

	return res, utilerrors.NewAggregate(failures)
}

func (p *Planner) specs(ref string, cfg *v1alpha1.FilterConfig) ([]frontier.Spec, error) {
	if !cfg.AllPackages() {
		specs := make([]frontier.Spec, 0, len(cfg.Packages))
		for _, fp := range cfg.Packages {
			specs = append(specs, frontier.Spec{
				Name:        strings.TrimSpace(fp.Name),
				Channel:     fp.ChannelOrDefault(),
				FromVersion: strings.TrimSpace(fp.FromVersion),
			})
		}
		return specs, nil
	}

	names, err := p.cache.Packages(ref)
	if err != nil {
		return nil, err
	}
	specs := make([]frontier.Spec, 0, len(names))
	for _, name := range names {
		specs = append(specs, frontier.Spec{Name: name, Channel: frontier.AllChannels})
	}
	return specs, nil
}

// evaluateAll evaluates specs concurrently. Evaluations are returned sorted
// by package name; reports are written in completion order.
func (p *Planner) evaluateAll(ctx context.Context, ref string, specs []frontier.Spec) ([]*Evaluation, []error) {
	var (
		mu       sync.Mutex
		evs      []*Evaluation
		failures []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for _, spec := range specs {
		spec := spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := p.log.WithValues("catalog", ref, "package", spec.Name)

			ev, err := p.Evaluate(ref, spec)
			if err != nil {
				if errors.Is(err, catalog.ErrPackageNotFound) {
					log.Info("package not found in catalog")
					ev = &Evaluation{Report: report.PackageReport{
						Catalog:        ref,
						Name:           spec.Name,
						DefaultChannel: report.UnknownChannel,
						Warnings:       []string{"package not found in catalog"},
					}}
				} else {
					log.Error(err, "evaluating package")
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
					return nil
				}
			}
			p.logEvaluation(log, ev)

			if err := p.reporter.Write(ev.Report); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			mu.Lock()
			evs = append(evs, ev)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		failures = append(failures, err)
	}

	sort.Slice(evs, func(i, j int) bool { return evs[i].Report.Name < evs[j].Report.Name })
	return evs, failures
}

func (p *Planner) logEvaluation(log logr.Logger, ev *Evaluation) {
	for _, w := range ev.Report.Warnings {
		log.Info("warning", "detail", w)
	}
	for _, ch := range ev.Report.Channels {
		f := ch.Frontier
		for _, m := range f.Diagnostics.Malformed {
			log.Info("skipping entry with malformed version", "channel", f.Channel, "entry", m.Name, "error", m.Err.Error())
		}
		log.V(1).Info("computed frontier", "channel", f.Channel, "live", f.LiveCount, "frontier", f.Names())
		log.V(2).Info("skip ranges", "channel", f.Channel, "skipRanges", f.SkipRanges)
	}
}

func (p *Planner) writeManifest(selections map[string][]string) (string, error) {
	if err := p.fs.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(p.opts.OutputDir, manifest.FileName)
	text := manifest.Emit(p.opts.APIVersion, selections)
	if err := afero.WriteFile(p.fs, path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// mergeSelection appends the bundles of next not already in prev. A package
// found in several catalogs contributes each bundle once.
func mergeSelection(prev, next []string) []string {
	seen := sets.New(prev...)
	out := append([]string(nil), prev...)
	for _, b := range next {
		if !seen.Has(b) {
			seen.Insert(b)
			out = append(out, b)
		}
	}
	return out
}
