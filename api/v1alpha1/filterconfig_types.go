package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"github.com/bayleafwalker/operator-upgradepath/internal/semver"
)

const (
	FilterConfigKind = "FilterConfiguration"

	// AllChannels selects every channel of a package.
	AllChannels = "all"
)

// ErrInconsistentCatalogSet is returned when the catalogs of a filter do not
// share one base image. Catalogs may only differ by tag or digest.
var ErrInconsistentCatalogSet = errors.New("catalog images are expected to be the same (except for versions)")

// ErrUnrecognizedKind is returned when apiVersion and kind do not name a
// filter document known to this group.
var ErrUnrecognizedKind = errors.New("unrecognized filter document")

var knownTypes = sync.OnceValues(SchemeBuilder.Build)

// FilterConfig selects the catalogs and packages an upgrade path is computed for.
//
// +kubebuilder:object:root=true
type FilterConfig struct {
	metav1.TypeMeta `json:",inline"`

	// Catalogs lists catalog image references. All of them must share the
	// same repository.
	Catalogs []string `json:"catalogs"`

	// Packages restricts evaluation to the named packages. Empty means every
	// package of each catalog.
	Packages []FilterPackage `json:"packages,omitempty"`
}

type FilterPackage struct {
	Name string `json:"name"`
	// Channel is a channel name or "all". Defaults to "all".
	Channel string `json:"channel,omitempty"`
	// FromVersion is the currently installed version. Empty means unbounded.
	FromVersion string `json:"fromVersion,omitempty"`
}

// ChannelOrDefault returns the requested channel, AllChannels when unset.
func (p FilterPackage) ChannelOrDefault() string {
	if c := strings.TrimSpace(p.Channel); c != "" {
		return c
	}
	return AllChannels
}

// AllPackages reports whether the filter evaluates every package in the catalogs.
func (c *FilterConfig) AllPackages() bool {
	return len(c.Packages) == 0
}

// DecodeFilterConfig decodes a YAML or JSON filter document. Unknown fields
// are rejected.
func DecodeFilterConfig(data []byte) (*FilterConfig, error) {
	cfg := &FilterConfig{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("decode filter config: %w", err)
	}
	return cfg, nil
}

// Validate checks the shape of the filter. All problems are reported together.
func (c *FilterConfig) Validate() error {
	var errs []error

	if err := c.validateTypeMeta(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Catalogs) == 0 {
		errs = append(errs, errors.New("catalogs: at least one catalog is required"))
	}
	repos := sets.New[string]()
	for i, raw := range c.Catalogs {
		ref, err := ParseCatalogRef(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("catalogs[%d]: %w", i, err))
			continue
		}
		repos.Insert(ref.Repository)
	}
	if repos.Len() > 1 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInconsistentCatalogSet, strings.Join(sets.List(repos), ", ")))
	}

	names := sets.New[string]()
	for i, p := range c.Packages {
		name := strings.TrimSpace(p.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("packages[%d].name: must not be empty", i))
		case names.Has(name):
			errs = append(errs, fmt.Errorf("packages[%d].name: duplicate package %q", i, name))
		}
		names.Insert(name)

		if p.FromVersion != "" {
			if _, err := semver.ParseLenient(p.FromVersion); err != nil {
				errs = append(errs, fmt.Errorf("packages[%d].fromVersion: %w", i, err))
			}
		}
	}

	return utilerrors.NewAggregate(errs)
}

func (c *FilterConfig) validateTypeMeta() error {
	switch {
	case c.APIVersion == "":
		return errors.New("apiVersion: must be set")
	case c.Kind == "":
		return errors.New("kind: must be set")
	}
	gv, err := schema.ParseGroupVersion(c.APIVersion)
	if err != nil {
		return fmt.Errorf("apiVersion: %w", err)
	}
	s, err := knownTypes()
	if err != nil {
		return fmt.Errorf("build scheme: %w", err)
	}
	obj, err := s.New(gv.WithKind(c.Kind))
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrUnrecognizedKind, c.APIVersion, c.Kind)
	}
	if _, ok := obj.(*FilterConfig); !ok {
		return fmt.Errorf("%w: %s %s is not a %s", ErrUnrecognizedKind, c.APIVersion, c.Kind, FilterConfigKind)
	}
	return nil
}

func init() {
	// The document kind differs from the Go type name.
	SchemeBuilder.SchemeBuilder.Register(func(s *runtime.Scheme) error {
		s.AddKnownTypeWithName(GroupVersion.WithKind(FilterConfigKind), &FilterConfig{})
		metav1.AddToGroupVersion(s, GroupVersion)
		return nil
	})
}
