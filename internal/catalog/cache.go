// Package catalog reads extracted catalog images from the working dir.
//
// An extracted catalog lives under <workingDir>/<name>/<tag>/cache and holds
// one directory per package below a "configs" directory:
//
//	redhat-operator-index/v4.15/cache/<hash>/configs/etcd/catalog.json
//
// When a package directory holds an "updated-configs" directory, that
// directory replaces the package directory's own files.
//
// Fetching and extracting catalog images is done by other tooling.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
	"github.com/bayleafwalker/operator-upgradepath/internal/declcfg"
)

var (
	// ErrCatalogNotCached is returned when no configs directory exists for a catalog.
	ErrCatalogNotCached = errors.New("catalog not found in cache")

	// ErrPackageNotFound is returned when a package directory does not exist.
	ErrPackageNotFound = errors.New("package not found in catalog")
)

const (
	configsDirName        = "configs"
	updatedConfigsDirName = "updated-configs"
)

var errFound = errors.New("found")

// Cache resolves catalogs against a working dir on an afero filesystem.
type Cache struct {
	fs         afero.Fs
	workingDir string
}

func NewCache(fsys afero.Fs, workingDir string) *Cache {
	return &Cache{fs: fsys, workingDir: workingDir}
}

// WorkingDir returns the root the cache reads from.
func (c *Cache) WorkingDir() string { return c.workingDir }

// ConfigsDir returns the first configs directory below the catalog's cache
// dir, in lexical walk order.
func (c *Cache) ConfigsDir(catalogRef string) (string, error) {
	ref, err := v1alpha1.ParseCatalogRef(catalogRef)
	if err != nil {
		return "", err
	}
	root := filepath.Join(c.workingDir, filepath.FromSlash(ref.CacheKey()), "cache")

	var found string
	err = afero.Walk(c.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && info.Name() == configsDirName {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("walk %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s (looked in %s)", ErrCatalogNotCached, catalogRef, root)
	}
	return found, nil
}

// Packages lists the package directories of a catalog, sorted by name.
func (c *Cache) Packages(catalogRef string) ([]string, error) {
	dir, err := c.ConfigsDir(catalogRef)
	if err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadPackage decodes the declarative config files of a package. Only files
// directly inside the package's config dir are read (see PackageConfigDir),
// in lexical order, documents in file order.
func (c *Cache) LoadPackage(catalogRef, pkg string) ([]declcfg.Record, error) {
	dir, err := c.PackageConfigDir(catalogRef, pkg)
	if err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, info := range infos {
		if !info.IsDir() && IsConfigFile(info.Name()) {
			files = append(files, filepath.Join(dir, info.Name()))
		}
	}
	sort.Strings(files)

	var records []declcfg.Record
	for _, path := range files {
		recs, err := c.decodeFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// PackageConfigDir returns the directory LoadPackage reads for pkg: its
// updated-configs directory when present, the package directory otherwise.
func (c *Cache) PackageConfigDir(catalogRef, pkg string) (string, error) {
	dir, err := c.ConfigsDir(catalogRef)
	if err != nil {
		return "", err
	}
	pkgDir := filepath.Join(dir, pkg)
	if ok, err := afero.DirExists(c.fs, pkgDir); err != nil {
		return "", fmt.Errorf("stat %s: %w", pkgDir, err)
	} else if !ok {
		return "", fmt.Errorf("%w: %q in %s", ErrPackageNotFound, pkg, catalogRef)
	}

	updated := filepath.Join(pkgDir, updatedConfigsDirName)
	ok, err := afero.DirExists(c.fs, updated)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", updated, err)
	}
	if ok {
		return updated, nil
	}
	return pkgDir, nil
}

func (c *Cache) decodeFile(path string) ([]declcfg.Record, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := declcfg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// IsConfigFile reports whether path looks like a declarative config file.
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
