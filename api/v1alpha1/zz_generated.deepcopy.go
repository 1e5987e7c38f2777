package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *FilterConfig) DeepCopyInto(out *FilterConfig) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	if in.Catalogs != nil {
		out.Catalogs = make([]string, len(in.Catalogs))
		copy(out.Catalogs, in.Catalogs)
	}
	if in.Packages != nil {
		out.Packages = make([]FilterPackage, len(in.Packages))
		copy(out.Packages, in.Packages)
	}
}

// DeepCopy copies the receiver, creating a new FilterConfig.
func (in *FilterConfig) DeepCopy() *FilterConfig {
	if in == nil {
		return nil
	}
	out := new(FilterConfig)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *FilterConfig) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ImageSetConfiguration) DeepCopyInto(out *ImageSetConfiguration) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.Metadata.DeepCopyInto(&out.Metadata)
	in.Mirror.DeepCopyInto(&out.Mirror)
}

// DeepCopy copies the receiver, creating a new ImageSetConfiguration.
func (in *ImageSetConfiguration) DeepCopy() *ImageSetConfiguration {
	if in == nil {
		return nil
	}
	out := new(ImageSetConfiguration)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *ImageSetConfiguration) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ImageSetMetadata) DeepCopyInto(out *ImageSetMetadata) {
	*out = *in
	if in.Annotations != nil {
		out.Annotations = make(map[string]string, len(in.Annotations))
		for k, v := range in.Annotations {
			out.Annotations[k] = v
		}
	}
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *Mirror) DeepCopyInto(out *Mirror) {
	*out = *in
	if in.Operators != nil {
		out.Operators = make([]OperatorSelection, len(in.Operators))
		for i := range in.Operators {
			in.Operators[i].DeepCopyInto(&out.Operators[i])
		}
	}
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *OperatorSelection) DeepCopyInto(out *OperatorSelection) {
	*out = *in
	if in.Packages != nil {
		out.Packages = make([]PackageSelection, len(in.Packages))
		for i := range in.Packages {
			in.Packages[i].DeepCopyInto(&out.Packages[i])
		}
	}
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *PackageSelection) DeepCopyInto(out *PackageSelection) {
	*out = *in
	if in.Bundles != nil {
		out.Bundles = make([]BundleSelection, len(in.Bundles))
		copy(out.Bundles, in.Bundles)
	}
}
