package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedVersion is returned when a bundle name does not embed a
// parseable version.
var ErrMalformedVersion = errors.New("malformed version")

// Normalize extracts the version embedded in a bundle name.
//
// Catalogs in the wild mix three conventions:
//
//	etcd-operator.v4.5.1   package prefix, ".v" separator
//	amq-streams.2.6.0-1    package prefix, no "v"
//	4.5.1-rc1, v7          no prefix at all
//
// The payload is whatever follows the last ".v"; without one, the first
// dot-delimited segment is dropped as a package prefix unless it is itself
// numeric (or "v" plus digits). Three or more payload components are read as
// major.minor.patch[-prerelease], two as major.minor, one as a bare major.
// Build metadata is discarded.
func Normalize(name string) (Version, error) {
	name = strings.TrimSpace(name)
	payload := payloadOf(name)
	if payload == "" {
		return Version{}, fmt.Errorf("%w: %q: no version payload", ErrMalformedVersion, name)
	}

	parts := strings.Split(payload, ".")
	switch {
	case len(parts) >= 3:
		major, err := component(name, "major", parts[0])
		if err != nil {
			return Version{}, err
		}
		minor, err := component(name, "minor", parts[1])
		if err != nil {
			return Version{}, err
		}
		rawPatch, pre, _ := strings.Cut(stripBuild(parts[2]), "-")
		patch, err := component(name, "patch", rawPatch)
		if err != nil {
			return Version{}, err
		}
		return New(major, minor, patch, pre), nil

	case len(parts) == 2:
		major, err := component(name, "major", parts[0])
		if err != nil {
			return Version{}, err
		}
		rawMinor, pre, _ := strings.Cut(stripBuild(parts[1]), "-")
		minor, err := component(name, "minor", rawMinor)
		if err != nil {
			return Version{}, err
		}
		return New(major, minor, 0, pre), nil

	default:
		raw := payload
		if i := strings.LastIndex(raw, "v"); i >= 0 {
			raw = raw[i+1:]
		}
		major, err := component(name, "major", stripBuild(raw))
		if err != nil {
			return Version{}, err
		}
		return New(major, 0, 0, ""), nil
	}
}

// ParseLenient parses a user supplied version such as a fromVersion filter.
// Plain semver ("1.2.3", "v1.2") is tried first, bundle-name rules second.
func ParseLenient(raw string) (Version, error) {
	raw = strings.TrimSpace(raw)
	if v, err := ParseVersion(raw); err == nil {
		return v, nil
	}
	v, err := Normalize(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return v, nil
}

func payloadOf(name string) string {
	if i := strings.LastIndex(name, ".v"); i >= 0 {
		return name[i+len(".v"):]
	}
	prefix, rest, found := strings.Cut(name, ".")
	if !found {
		return name
	}
	switch {
	case isDigits(prefix):
		return name
	case strings.HasPrefix(prefix, "v") && isDigits(prefix[1:]):
		return name[1:]
	}
	return rest
}

func component(name, which, raw string) (uint64, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %s component %q", ErrMalformedVersion, name, which, raw)
	}
	return n, nil
}

func stripBuild(s string) string {
	s, _, _ = strings.Cut(s, "+")
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
