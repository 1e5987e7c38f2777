package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/bayleafwalker/operator-upgradepath/internal/declcfg"
)

const catalogRef = "registry.redhat.io/redhat/redhat-operator-index:v4.15"

func newTestCache(t *testing.T, files map[string]string) *Cache {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		path := filepath.Join("/work", filepath.FromSlash(name))
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return NewCache(fsys, "/work")
}

const etcdJSON = `{"schema":"olm.package","name":"etcd","defaultChannel":"alpha"}
{"schema":"olm.channel","name":"alpha","package":"etcd","entries":[{"name":"etcd.v0.9.2"},{"name":"etcd.v0.9.4","replaces":"etcd.v0.9.2"}]}
`

const etcdBundleYAML = `schema: olm.bundle
name: etcd.v0.9.4
package: etcd
`

func TestCache_Packages(t *testing.T) {
	c := newTestCache(t, map[string]string{
		"redhat-operator-index/v4.15/cache/abc/configs/etcd/catalog.json":   etcdJSON,
		"redhat-operator-index/v4.15/cache/abc/configs/amq/catalog.json":    "",
		"redhat-operator-index/v4.15/cache/abc/configs/README.md":           "not a package",
		"redhat-operator-index/v4.14/cache/abc/configs/old-only/index.json": "",
	})

	got, err := c.Packages(catalogRef)
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}
	if diff := cmp.Diff([]string{"amq", "etcd"}, got); diff != "" {
		t.Fatalf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_LoadPackage(t *testing.T) {
	c := newTestCache(t, map[string]string{
		"redhat-operator-index/v4.15/cache/abc/configs/etcd/a-catalog.json":    etcdJSON,
		"redhat-operator-index/v4.15/cache/abc/configs/etcd/b-bundle.yaml":     etcdBundleYAML,
		"redhat-operator-index/v4.15/cache/abc/configs/etcd/notes.txt":         "ignored",
		"redhat-operator-index/v4.15/cache/abc/configs/etcd/nested/extra.json": `{"schema":"olm.package","name":"nested"}`,
		"redhat-operator-index/v4.15/cache/abc/configs/other/catalog.json":     `{"schema":"olm.package","name":"other"}`,
	})

	recs, err := c.LoadPackage(catalogRef, "etcd")
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}

	var schemas []string
	for _, r := range recs {
		schemas = append(schemas, r.Schema())
	}
	if diff := cmp.Diff([]string{declcfg.SchemaPackage, declcfg.SchemaChannel, "olm.bundle"}, schemas); diff != "" {
		t.Fatalf("schemas mismatch (-want +got):\n%s", diff)
	}
	ch, ok := recs[1].(declcfg.ChannelRecord)
	if !ok {
		t.Fatalf("record 1 is %T, want ChannelRecord", recs[1])
	}
	if len(ch.Entries) != 2 || ch.Entries[1].Replaces != "etcd.v0.9.2" {
		t.Fatalf("unexpected channel entries: %+v", ch.Entries)
	}
}

func TestCache_LoadPackage_UpdatedConfigs(t *testing.T) {
	const pkgDir = "redhat-operator-index/v4.15/cache/abc/configs/etcd"
	c := newTestCache(t, map[string]string{
		pkgDir + "/catalog.json":                 etcdJSON,
		pkgDir + "/updated-configs/package.json": `{"schema":"olm.package","name":"etcd","defaultChannel":"stable"}`,
		pkgDir + "/updated-configs/channel.json": `{"schema":"olm.channel","name":"stable","package":"etcd","entries":[{"name":"etcd.v1.0.0"}]}`,
	})

	dir, err := c.PackageConfigDir(catalogRef, "etcd")
	if err != nil {
		t.Fatalf("PackageConfigDir: %v", err)
	}
	if want := filepath.Join("/work", pkgDir, "updated-configs"); dir != want {
		t.Fatalf("PackageConfigDir = %q, want %q", dir, want)
	}

	recs, err := c.LoadPackage(catalogRef, "etcd")
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want the 2 updated-configs records only", len(recs))
	}
	// channel.json sorts before package.json.
	ch, ok := recs[0].(declcfg.ChannelRecord)
	if !ok || ch.Name != "stable" {
		t.Fatalf("record 0 = %+v, want channel stable", recs[0])
	}
	pkg, ok := recs[1].(declcfg.PackageRecord)
	if !ok || pkg.DefaultChannel != "stable" {
		t.Fatalf("record 1 = %+v, want package with default channel stable", recs[1])
	}
}

func TestCache_Errors(t *testing.T) {
	c := newTestCache(t, map[string]string{
		"redhat-operator-index/v4.15/cache/abc/configs/broken/catalog.json": `{"schema":`,
	})

	if _, err := c.Packages("quay.io/org/missing:v1"); !errors.Is(err, ErrCatalogNotCached) {
		t.Errorf("Packages(missing) error = %v, want ErrCatalogNotCached", err)
	}
	if _, err := c.LoadPackage(catalogRef, "nope"); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("LoadPackage(nope) error = %v, want ErrPackageNotFound", err)
	}
	if _, err := c.LoadPackage(catalogRef, "broken"); err == nil {
		t.Errorf("LoadPackage(broken) expected decode error")
	}
}

func TestIsConfigFile(t *testing.T) {
	for path, want := range map[string]bool{
		"catalog.json": true,
		"index.YAML":   true,
		"x.yml":        true,
		"README.md":    false,
		"Dockerfile":   false,
	} {
		if got := IsConfigFile(path); got != want {
			t.Errorf("IsConfigFile(%q) = %v, want %v", path, got, want)
		}
	}
}
