package v1alpha1

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

const testDigest = "sha256:4b1d4a3a3f1b8f0c5b7e2f6c9d0a1e2b3c4d5e6f708192a3b4c5d6e7f8091a2b"

var filterTypeMeta = metav1.TypeMeta{APIVersion: "mirror.openshift/v1alpha1", Kind: FilterConfigKind}

const sampleFilter = `
kind: FilterConfiguration
apiVersion: mirror.openshift/v1alpha1
catalogs:
  - registry.redhat.io/redhat/redhat-operator-index:v4.14
  - registry.redhat.io/redhat/redhat-operator-index:v4.15
packages:
  - name: servicemeshoperator
    channel: stable
    fromVersion: 2.4.0
  - name: kiali-ossm
`

func TestDecodeFilterConfig(t *testing.T) {
	cfg, err := DecodeFilterConfig([]byte(sampleFilter))
	if err != nil {
		t.Fatalf("DecodeFilterConfig: %v", err)
	}

	if cfg.Kind != FilterConfigKind {
		t.Errorf("Kind = %q, want %q", cfg.Kind, FilterConfigKind)
	}
	want := []FilterPackage{
		{Name: "servicemeshoperator", Channel: "stable", FromVersion: "2.4.0"},
		{Name: "kiali-ossm"},
	}
	if diff := cmp.Diff(want, cfg.Packages); diff != "" {
		t.Fatalf("packages mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Packages[1].ChannelOrDefault(); got != AllChannels {
		t.Errorf("ChannelOrDefault() = %q, want %q", got, AllChannels)
	}
	if cfg.AllPackages() {
		t.Errorf("AllPackages() = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDecodeFilterConfig_UnknownField(t *testing.T) {
	_, err := DecodeFilterConfig([]byte("kind: FilterConfiguration\ncatalogs: [a:b]\noperators: []\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FilterConfig
		wantErr []string
		wantIs  error
	}{
		{
			name: "valid with digest",
			cfg:  FilterConfig{TypeMeta: filterTypeMeta, Catalogs: []string{"quay.io/org/index@" + testDigest, "quay.io/org/index:v1"}},
		},
		{
			name:    "no catalogs",
			cfg:     FilterConfig{TypeMeta: filterTypeMeta},
			wantErr: []string{"at least one catalog"},
		},
		{
			name: "inconsistent catalogs",
			cfg: FilterConfig{TypeMeta: filterTypeMeta, Catalogs: []string{
				"registry.redhat.io/redhat/redhat-operator-index:v4.15",
				"registry.redhat.io/redhat/certified-operator-index:v4.15",
			}},
			wantIs: ErrInconsistentCatalogSet,
		},
		{
			name: "registry port is not a tag",
			cfg:  FilterConfig{TypeMeta: filterTypeMeta, Catalogs: []string{"localhost:5000/index:v1", "localhost:5000/index:v2"}},
		},
		{
			name: "docker hub short and long names are the same repository",
			cfg:  FilterConfig{TypeMeta: filterTypeMeta, Catalogs: []string{"index:v1", "docker.io/library/index:v2"}},
		},
		{
			name:    "malformed catalog",
			cfg:     FilterConfig{TypeMeta: filterTypeMeta, Catalogs: []string{"Quay.io/Org/:v1"}},
			wantErr: []string{"catalogs[0]"},
			wantIs:  ErrInvalidCatalogRef,
		},
		{
			name: "package problems are aggregated",
			cfg: FilterConfig{
				TypeMeta: filterTypeMeta,
				Catalogs: []string{"quay.io/org/index:v1"},
				Packages: []FilterPackage{
					{Name: ""},
					{Name: "etcd", FromVersion: "yesterday"},
					{Name: "etcd"},
				},
			},
			wantErr: []string{"packages[0].name", "packages[1].fromVersion", "packages[2].name: duplicate"},
		},
		{
			name: "bad apiVersion",
			cfg: FilterConfig{
				TypeMeta: metav1.TypeMeta{APIVersion: "a/b/c", Kind: FilterConfigKind},
				Catalogs: []string{"quay.io/org/index:v1"},
			},
			wantErr: []string{"apiVersion"},
		},
		{
			name:    "missing type meta",
			cfg:     FilterConfig{Catalogs: []string{"quay.io/org/index:v1"}},
			wantErr: []string{"apiVersion: must be set"},
		},
		{
			name: "missing kind",
			cfg: FilterConfig{
				TypeMeta: metav1.TypeMeta{APIVersion: "mirror.openshift/v1alpha1"},
				Catalogs: []string{"quay.io/org/index:v1"},
			},
			wantErr: []string{"kind: must be set"},
		},
		{
			name: "unknown version",
			cfg: FilterConfig{
				TypeMeta: metav1.TypeMeta{APIVersion: "mirror.openshift/v9", Kind: FilterConfigKind},
				Catalogs: []string{"quay.io/org/index:v1"},
			},
			wantIs: ErrUnrecognizedKind,
		},
		{
			name: "type name is not the kind",
			cfg: FilterConfig{
				TypeMeta: metav1.TypeMeta{APIVersion: "mirror.openshift/v1alpha1", Kind: "FilterConfig"},
				Catalogs: []string{"quay.io/org/index:v1"},
			},
			wantIs: ErrUnrecognizedKind,
		},
		{
			name: "manifest kind is not a filter",
			cfg: FilterConfig{
				TypeMeta: metav1.TypeMeta{APIVersion: "mirror.openshift/v1alpha1", Kind: ImageSetConfigurationKind},
				Catalogs: []string{"quay.io/org/index:v1"},
			},
			wantErr: []string{"is not a FilterConfiguration"},
			wantIs:  ErrUnrecognizedKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 && tt.wantIs == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
		})
	}
}

func TestAddToScheme(t *testing.T) {
	s := runtime.NewScheme()
	if err := AddToScheme(s); err != nil {
		t.Fatalf("AddToScheme: %v", err)
	}
	for _, kind := range []string{FilterConfigKind, ImageSetConfigurationKind} {
		if !s.Recognizes(GroupVersion.WithKind(kind)) {
			t.Errorf("scheme does not recognize %s", kind)
		}
	}

	obj, err := s.New(GroupVersion.WithKind(FilterConfigKind))
	if err != nil {
		t.Fatalf("New(%s): %v", FilterConfigKind, err)
	}
	if _, ok := obj.(*FilterConfig); !ok {
		t.Fatalf("New(%s) = %T, want *FilterConfig", FilterConfigKind, obj)
	}
}
