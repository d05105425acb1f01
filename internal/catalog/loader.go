package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for catalog and version files.
type Paths struct {
	BaseDir string // base directory, e.g., configs/catalog
}

func (p Paths) CatalogPath() string {
	return filepath.Join(p.BaseDir, "catalog.yaml")
}
func (p Paths) VersionGlob() string {
	return filepath.Join(p.BaseDir, "pools", "*.yaml")
}

// Files lists every catalog file currently on disk.
func (p Paths) Files() ([]string, error) {
	versions, err := filepath.Glob(p.VersionGlob())
	if err != nil {
		return nil, err
	}
	return append([]string{p.CatalogPath()}, versions...), nil
}

// Loader reads YAML files and merges catalog → versions.
type Loader struct {
	paths Paths

	mu     sync.RWMutex
	cached *Data
}

// NewLoader creates a catalog loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load returns the merged, validated catalog, reading from disk only when
// nothing is cached.
func (l *Loader) Load() (*Data, error) {
	l.mu.RLock()
	if l.cached != nil {
		d := l.cached
		l.mu.RUnlock()
		return d, nil
	}
	l.mu.RUnlock()

	var base RawCatalog
	found, err := readYAML(l.paths.CatalogPath(), &base)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("read catalog: %s: %w", l.paths.CatalogPath(), os.ErrNotExist)
	}

	files, err := filepath.Glob(l.paths.VersionGlob())
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	d := &Data{Base: base}
	for _, f := range files {
		var vf VersionFile
		if _, err := readYAML(f, &vf); err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(f), err)
		}
		if vf.Version == "" {
			vf.Version = trimExt(filepath.Base(f))
		}
		d.Versions = append(d.Versions, vf)
	}
	slices.SortStableFunc(d.Versions, func(a, b VersionFile) int {
		return compareVersion(a.Version, b.Version)
	})
	// version files extend the shared prize lists and names
	for _, vf := range d.Versions {
		d.Base = mergeVersion(d.Base, vf)
	}

	if err := ValidateData(d); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cached = d
	l.mu.Unlock()
	return d, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a YAML file into out. Missing files report found == false, no error.
func readYAML(path string, out any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return true, err
	}
	return true, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// mergeVersion folds a version file into the base catalog: prize lists gain
// any new entries (order kept, no duplicates) and names are overridden.
func mergeVersion(base RawCatalog, vf VersionFile) RawCatalog {
	out := base
	if vf.Prizes != nil {
		out.Prizes = Prizes{
			Tier3: appendUnique(base.Prizes.Tier3, vf.Prizes.Tier3),
			Tier4: Tier4Lists{
				Items:      appendUnique(base.Prizes.Tier4.Items, vf.Prizes.Tier4.Items),
				Characters: appendUnique(base.Prizes.Tier4.Characters, vf.Prizes.Tier4.Characters),
			},
			Tier5: Tier5Lists{
				Standard: appendUnique(base.Prizes.Tier5.Standard, vf.Prizes.Tier5.Standard),
			},
		}
	}
	if len(vf.Names) > 0 {
		names := make(map[string]string, len(base.Names)+len(vf.Names))
		for k, v := range base.Names {
			names[k] = v
		}
		for k, v := range vf.Names {
			names[k] = v
		}
		out.Names = names
	}
	return out
}

func appendUnique(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
