package manifest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestEmit(t *testing.T) {
	got := Emit("v3alpha1", map[string][]string{
		"kiali-ossm":          {"kiali-operator.v1.73.4"},
		"servicemeshoperator": {"servicemeshoperator.v2.4.5", "servicemeshoperator.v2.5.0"},
		"empty":               nil,
	})

	want := `---
apiVersion: mirror.openshift/v3alpha1
kind: ImageSetConfiguration
metadata:
  name: ImageSetConfiguration
  annotations:
    autogenerated: 'operator-upgradepath'
mirror:
  operators:
    - packages:
        - bundles:
            - name: kiali-operator.v1.73.4
    - packages:
        - bundles:
            - name: servicemeshoperator.v2.4.5
            - name: servicemeshoperator.v2.5.0
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestEmit_DefaultVersionAndNoSelections(t *testing.T) {
	got := Emit("", nil)

	want := `---
apiVersion: mirror.openshift/v3alpha1
kind: ImageSetConfiguration
metadata:
  name: ImageSetConfiguration
  annotations:
    autogenerated: 'operator-upgradepath'
mirror:
  operators:
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestEmit_IsValidYAML(t *testing.T) {
	out := Emit("v1alpha2", map[string][]string{
		"etcd": {"etcd.v0.9.4", "etcd.v0.9.4-clusterwide"},
	})

	var doc struct {
		APIVersion string `yaml:"apiVersion"`
		Kind       string `yaml:"kind"`
		Metadata   struct {
			Annotations map[string]string `yaml:"annotations"`
		} `yaml:"metadata"`
		Mirror struct {
			Operators []struct {
				Packages []struct {
					Bundles []struct {
						Name string `yaml:"name"`
					} `yaml:"bundles"`
				} `yaml:"packages"`
			} `yaml:"operators"`
		} `yaml:"mirror"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("emitted manifest is not valid YAML: %v\n%s", err, out)
	}

	if doc.APIVersion != "mirror.openshift/v1alpha2" || doc.Kind != "ImageSetConfiguration" {
		t.Fatalf("unexpected header: %s %s", doc.APIVersion, doc.Kind)
	}
	if doc.Metadata.Annotations["autogenerated"] != ToolName {
		t.Fatalf("annotation = %q", doc.Metadata.Annotations["autogenerated"])
	}
	var bundles []string
	for _, op := range doc.Mirror.Operators {
		for _, p := range op.Packages {
			for _, b := range p.Bundles {
				bundles = append(bundles, b.Name)
			}
		}
	}
	if diff := cmp.Diff([]string{"etcd.v0.9.4", "etcd.v0.9.4-clusterwide"}, bundles); diff != "" {
		t.Fatalf("bundles mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_OrdersPackagesByName(t *testing.T) {
	isc := Build("v3alpha1", map[string][]string{
		"zz": {"zz.v1.0.0"},
		"aa": {"aa.v1.0.0"},
	})

	var got []string
	for _, op := range isc.Mirror.Operators {
		got = append(got, op.Packages[0].Name)
	}
	if diff := cmp.Diff([]string{"aa", "zz"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_PropagatesWriteError(t *testing.T) {
	if err := Render(failingWriter{}, Build("", nil)); err == nil {
		t.Fatal("expected write error")
	}
}
