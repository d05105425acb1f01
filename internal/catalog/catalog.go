package catalog

import (
	"fmt"
	"slices"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// Catalog answers pool lookups from the YAML files under one directory.
// It is safe for concurrent use.
type Catalog struct {
	loader *Loader
}

// New returns a catalog reading from baseDir. Files are read lazily on the
// first lookup.
func New(baseDir string) *Catalog {
	return &Catalog{loader: NewLoader(baseDir)}
}

// Loader exposes the underlying loader, e.g. to invalidate it on reload.
func (c *Catalog) Loader() *Loader { return c.loader }

// Resolve builds the reward table for poolID.
// - Character pools draw tier-4 off-banner results from every tier-4 item
//   and the non-featured characters, and tier-5 off-banner results from the
//   standard list.
// - Item pools draw tier-4 off-banner results from the non-featured items
//   and have no tier-5 off-banner list.
func (c *Catalog) Resolve(poolID string) (gacha.RewardTable, error) {
	d, err := c.loader.Load()
	if err != nil {
		return gacha.RewardTable{}, err
	}
	rp, ok := d.pool(poolID)
	if !ok {
		return gacha.RewardTable{}, fmt.Errorf("%w: %q", ErrUnknownPool, poolID)
	}
	kind, _ := parseKind(rp.Kind)
	prizes := d.Base.Prizes

	table := gacha.RewardTable{
		Name:  rp.ID,
		Kind:  kind,
		Tier3: slices.Clone(prizes.Tier3),
		Tier4: gacha.Tier4Set{Up: slices.Clone(rp.Tier4Up)},
		Tier5: gacha.Tier5Set{Up: rp.Tier5Up},
	}
	normal4 := prizes.Tier4.Items
	if kind == gacha.KindCharacter {
		normal4 = slices.Concat(prizes.Tier4.Items, prizes.Tier4.Characters)
		table.Tier5.Normal = without(prizes.Tier5.Standard, []string{rp.Tier5Up})
	}
	table.Tier4.Normal = without(normal4, rp.Tier4Up)

	if ok, reason := c.Validate(table); !ok {
		return gacha.RewardTable{}, fmt.Errorf("%w: %s: %s", gacha.ErrInvalidPool, poolID, reason)
	}
	return table, nil
}

// Validate reports whether table is structurally complete.
func (c *Catalog) Validate(table gacha.RewardTable) (bool, string) {
	return gacha.ValidateTable(table)
}

// Pools returns every pool id, sorted.
func (c *Catalog) Pools() ([]string, error) {
	d, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, vf := range d.Versions {
		for _, rp := range vf.Pools {
			ids = append(ids, rp.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Versions returns every version, oldest first.
func (c *Catalog) Versions() ([]string, error) {
	d, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(d.Versions))
	for _, vf := range d.Versions {
		out = append(out, vf.Version)
	}
	return out, nil
}

// PoolsForVersion returns the pool ids a version introduced, in file order.
func (c *Catalog) PoolsForVersion(version string) ([]string, error) {
	d, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	for _, vf := range d.Versions {
		if vf.Version != version {
			continue
		}
		ids := make([]string, 0, len(vf.Pools))
		for _, rp := range vf.Pools {
			ids = append(ids, rp.ID)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
}

// LatestPool returns the first pool of the newest version.
func (c *Catalog) LatestPool() (string, error) {
	d, err := c.loader.Load()
	if err != nil {
		return "", err
	}
	for i := len(d.Versions) - 1; i >= 0; i-- {
		if pools := d.Versions[i].Pools; len(pools) > 0 {
			return pools[0].ID, nil
		}
	}
	return "", fmt.Errorf("%w: catalog defines no pools", ErrUnknownPool)
}

// DefaultPool returns catalog.yaml's default_pool, falling back to LatestPool.
func (c *Catalog) DefaultPool() (string, error) {
	d, err := c.loader.Load()
	if err != nil {
		return "", err
	}
	if d.Base.DefaultPool != "" {
		return d.Base.DefaultPool, nil
	}
	return c.LatestPool()
}

func (d *Data) pool(id string) (RawPool, bool) {
	for _, vf := range d.Versions {
		for _, rp := range vf.Pools {
			if rp.ID == id {
				return rp, true
			}
		}
	}
	return RawPool{}, false
}

// without returns items minus drop, keeping order.
func without(items, drop []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(drop, it) {
			out = append(out, it)
		}
	}
	return out
}
