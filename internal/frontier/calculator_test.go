package frontier

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bayleafwalker/operator-upgradepath/internal/declcfg"
	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
)

func buildPackage(t *testing.T) *graph.Package {
	t.Helper()
	cat, err := graph.Build([]declcfg.Record{
		declcfg.PackageRecord{Name: "etcd", DefaultChannel: "stable"},
		declcfg.ChannelRecord{Name: "stable", Package: "etcd", Entries: []declcfg.ChannelEntry{
			{Name: "etcd.v1.0.0"},
			{Name: "etcd.v1.1.0", Replaces: "etcd.v1.0.0"},
		}},
		declcfg.ChannelRecord{Name: "alpha", Package: "etcd", Entries: []declcfg.ChannelEntry{
			{Name: "etcd.v1.2.0-alpha"},
		}},
	})
	if err != nil {
		t.Fatalf("graph.Build: %v", err)
	}
	pkg, ok := cat.Package("etcd")
	if !ok {
		t.Fatal("package etcd not found")
	}
	return pkg
}

func TestComputePackage_AllChannels(t *testing.T) {
	pkg := buildPackage(t)

	for _, channel := range []string{"", AllChannels} {
		frontiers, err := ComputePackage(NewDefault(), pkg, Spec{Name: "etcd", Channel: channel})
		if err != nil {
			t.Fatalf("ComputePackage error: %v", err)
		}
		var got []string
		for _, f := range frontiers {
			got = append(got, f.Channel+": "+f.Path())
		}
		want := []string{
			"alpha: ? -> etcd.v1.2.0-alpha",
			"stable: ? -> etcd.v1.1.0",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("channel=%q mismatch (-want +got):\n%s", channel, diff)
		}
	}
}

func TestComputePackage_SingleChannel(t *testing.T) {
	pkg := buildPackage(t)

	frontiers, err := ComputePackage(NewDefault(), pkg, Spec{Name: "etcd", Channel: "stable", FromVersion: "1.1.0"})
	if err != nil {
		t.Fatalf("ComputePackage error: %v", err)
	}
	if len(frontiers) != 1 || frontiers[0].Path() != "1.1.0 -> etcd.v1.1.0" {
		t.Fatalf("unexpected frontiers: %+v", frontiers)
	}
}

func TestComputePackage_UnknownChannel(t *testing.T) {
	pkg := buildPackage(t)

	_, err := ComputePackage(NewDefault(), pkg, Spec{Name: "etcd", Channel: "fast"})
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}
