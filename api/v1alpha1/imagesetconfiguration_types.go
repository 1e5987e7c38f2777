package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	ImageSetConfigurationKind = "ImageSetConfiguration"

	// MirrorGroup is the API group of emitted ImageSetConfiguration manifests.
	MirrorGroup = "mirror.openshift"

	// DefaultMirrorVersion is used when no api version is configured.
	DefaultMirrorVersion = "v3alpha1"

	// AutogeneratedAnnotation names the tool that produced a manifest.
	AutogeneratedAnnotation = "autogenerated"
)

// ImageSetConfiguration restricts a mirror operation to the listed bundles.
//
// +kubebuilder:object:root=true
type ImageSetConfiguration struct {
	metav1.TypeMeta `json:",inline"`

	Metadata ImageSetMetadata `json:"metadata"`
	Mirror   Mirror           `json:"mirror"`
}

type ImageSetMetadata struct {
	Name        string            `json:"name"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

type Mirror struct {
	Operators []OperatorSelection `json:"operators"`
}

// OperatorSelection holds the bundles picked for one package.
type OperatorSelection struct {
	Packages []PackageSelection `json:"packages"`
}

type PackageSelection struct {
	// Name is the package the bundles belong to. It orders selections and is
	// not part of the rendered manifest.
	Name    string            `json:"-"`
	Bundles []BundleSelection `json:"bundles"`
}

type BundleSelection struct {
	Name string `json:"name"`
}

func init() {
	SchemeBuilder.Register(&ImageSetConfiguration{})
}
