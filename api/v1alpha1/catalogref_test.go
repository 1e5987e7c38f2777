package v1alpha1

import (
	"errors"
	"testing"
)

func TestParseCatalogRef(t *testing.T) {
	tests := []struct {
		in       string
		repo     string
		cacheKey string
		str      string
	}{
		{"registry.redhat.io/redhat/redhat-operator-index:v4.15", "registry.redhat.io/redhat/redhat-operator-index", "redhat-operator-index/v4.15", ""},
		{"localhost:5000/index:v1", "localhost:5000/index", "index/v1", ""},
		{"localhost:5000/index", "localhost:5000/index", "index", ""},
		{"quay.io/org/index@" + testDigest, "quay.io/org/index", "index/" + "sha256/" + testDigest[len("sha256:"):], ""},
		{"index:v1", "docker.io/library/index", "index/v1", ""},
		{"docker.io/library/index:v1", "docker.io/library/index", "index/v1", "index:v1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseCatalogRef(tt.in)
			if err != nil {
				t.Fatalf("ParseCatalogRef: %v", err)
			}
			if ref.Repository != tt.repo {
				t.Errorf("Repository = %q, want %q", ref.Repository, tt.repo)
			}
			if ref.CacheKey() != tt.cacheKey {
				t.Errorf("CacheKey() = %q, want %q", ref.CacheKey(), tt.cacheKey)
			}
			wantStr := tt.str
			if wantStr == "" {
				wantStr = tt.in
			}
			if ref.String() != wantStr {
				t.Errorf("String() = %q, want %q", ref.String(), wantStr)
			}
		})
	}
}

func TestParseCatalogRef_TagAndDigest(t *testing.T) {
	ref, err := ParseCatalogRef("quay.io/org/index:v1@" + testDigest)
	if err != nil {
		t.Fatalf("ParseCatalogRef: %v", err)
	}
	if ref.Tag != "v1" || ref.Digest != testDigest {
		t.Fatalf("Tag = %q, Digest = %q", ref.Tag, ref.Digest)
	}
	if ref.CacheKey() != "index/v1" {
		t.Fatalf("CacheKey() = %q, want tag to win", ref.CacheKey())
	}
}

func TestParseCatalogRef_Invalid(t *testing.T) {
	for _, in := range []string{"", ":v1", "quay.io/org/:v1", "quay.io/org/index@sha256:abc", "Quay.io/Org/Index:v1"} {
		if _, err := ParseCatalogRef(in); !errors.Is(err, ErrInvalidCatalogRef) {
			t.Errorf("ParseCatalogRef(%q) error = %v, want ErrInvalidCatalogRef", in, err)
		}
	}
}
