// Package manifest renders the ImageSetConfiguration that restricts a mirror
// run to the bundles on the suggested upgrade path.
//
// Downstream mirror tooling reads the document by position, so the layout is
// produced by a fixed-indentation writer instead of a YAML encoder.
package manifest

import (
	"bytes"
	"io"
	"sort"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
)

const (
	// ToolName is recorded in the autogenerated annotation.
	ToolName = "operator-upgradepath"

	// FileName is the name of the manifest written to the output dir.
	FileName = "isc-upgradepath.yaml"
)

// Build assembles the manifest for the given selections, keyed by package
// name. Packages are ordered by name; packages with no bundles are left out.
func Build(apiVersion string, selections map[string][]string) *v1alpha1.ImageSetConfiguration {
	version := strings.TrimSpace(apiVersion)
	if version == "" {
		version = v1alpha1.DefaultMirrorVersion
	}

	isc := &v1alpha1.ImageSetConfiguration{
		TypeMeta: metav1.TypeMeta{
			APIVersion: schema.GroupVersion{Group: v1alpha1.MirrorGroup, Version: version}.String(),
			Kind:       v1alpha1.ImageSetConfigurationKind,
		},
		Metadata: v1alpha1.ImageSetMetadata{
			Name:        v1alpha1.ImageSetConfigurationKind,
			Annotations: map[string]string{v1alpha1.AutogeneratedAnnotation: ToolName},
		},
	}

	names := make([]string, 0, len(selections))
	for name, bundles := range selections {
		if len(bundles) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		pkg := v1alpha1.PackageSelection{Name: name}
		for _, b := range selections[name] {
			pkg.Bundles = append(pkg.Bundles, v1alpha1.BundleSelection{Name: b})
		}
		isc.Mirror.Operators = append(isc.Mirror.Operators, v1alpha1.OperatorSelection{
			Packages: []v1alpha1.PackageSelection{pkg},
		})
	}
	return isc
}

// Emit builds and renders the manifest in one step.
func Emit(apiVersion string, selections map[string][]string) string {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = Render(&buf, Build(apiVersion, selections))
	return buf.String()
}

// Render writes isc in the fixed layout:
//
//	---
//	apiVersion: mirror.openshift/<version>
//	kind: ImageSetConfiguration
//	metadata:
//	  name: ImageSetConfiguration
//	  annotations:
//	    autogenerated: '<tool>'
//	mirror:
//	  operators:
//	    - packages:
//	        - bundles:
//	            - name: <bundle>
func Render(w io.Writer, isc *v1alpha1.ImageSetConfiguration) error {
	iw := &indentWriter{w: w}

	iw.line(0, "---")
	iw.field(0, "apiVersion", isc.APIVersion)
	iw.field(0, "kind", isc.Kind)
	iw.line(0, "metadata:")
	iw.field(1, "name", isc.Metadata.Name)
	if len(isc.Metadata.Annotations) > 0 {
		iw.line(1, "annotations:")
		keys := make([]string, 0, len(isc.Metadata.Annotations))
		for k := range isc.Metadata.Annotations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			iw.field(2, k, quote(isc.Metadata.Annotations[k]))
		}
	}
	iw.line(0, "mirror:")
	iw.line(1, "operators:")
	for _, op := range isc.Mirror.Operators {
		iw.item(2, "packages:")
		for _, pkg := range op.Packages {
			iw.item(4, "bundles:")
			for _, b := range pkg.Bundles {
				iw.item(6, "name: "+b.Name)
			}
		}
	}
	return iw.err
}

// quote renders s as a single-quoted YAML scalar.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
