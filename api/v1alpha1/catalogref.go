package v1alpha1

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/distribution/reference"
)

// ErrInvalidCatalogRef is returned for catalog references that are not valid
// image references.
var ErrInvalidCatalogRef = errors.New("invalid catalog reference")

// CatalogRef is a parsed catalog image reference such as
// registry.redhat.io/redhat/redhat-operator-index:v4.15.
type CatalogRef struct {
	// Repository is the fully qualified repository without tag or digest.
	// Docker Hub short names are expanded, so "index" and
	// "docker.io/library/index" share one repository.
	Repository string
	Tag        string
	Digest     string

	named reference.Named
}

// ParseCatalogRef parses an image reference into repository, tag and digest.
func ParseCatalogRef(ref string) (CatalogRef, error) {
	named, err := reference.ParseNormalizedNamed(strings.TrimSpace(ref))
	if err != nil {
		return CatalogRef{}, fmt.Errorf("%w: %q: %v", ErrInvalidCatalogRef, ref, err)
	}

	out := CatalogRef{Repository: named.Name(), named: named}
	if t, ok := named.(reference.Tagged); ok {
		out.Tag = t.Tag()
	}
	if d, ok := named.(reference.Digested); ok {
		out.Digest = d.Digest().String()
	}
	return out, nil
}

// Name is the last path segment of the repository.
func (r CatalogRef) Name() string {
	if r.named == nil {
		return path.Base(r.Repository)
	}
	return path.Base(reference.Path(r.named))
}

// CacheKey is the relative directory the catalog is extracted to in the
// working dir: "<name>/<tag>".
func (r CatalogRef) CacheKey() string {
	switch {
	case r.Tag != "":
		return path.Join(r.Name(), r.Tag)
	case r.Digest != "":
		return path.Join(r.Name(), strings.ReplaceAll(r.Digest, ":", "/"))
	}
	return r.Name()
}

// String renders the reference in its familiar form.
func (r CatalogRef) String() string {
	if r.named == nil {
		return r.Repository
	}
	return reference.FamiliarString(r.named)
}
