package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

var (
	// ErrUnknownPool reports a pool id the catalog does not define.
	ErrUnknownPool = errors.New("unknown pool")
	// ErrUnknownVersion reports a version with no pools file.
	ErrUnknownVersion = errors.New("unknown version")
	// ErrInvalidCatalog reports catalog files that fail validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// parseKind maps the YAML kind onto a pool kind. "arms" and "weapon" are
// older spellings of item.
func parseKind(s string) (gacha.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "character":
		return gacha.KindCharacter, true
	case "item", "arms", "weapon":
		return gacha.KindItem, true
	}
	return "", false
}

// ValidateData checks semantic constraints of a merged catalog.
// Table-level checks (disjoint tier-4 lists and so on) run again per pool in
// Resolve through gacha.ValidateTable.
func ValidateData(d *Data) error {
	var errs []string

	p := d.Base.Prizes
	if len(p.Tier3) == 0 {
		errs = append(errs, "prizes.tier3 must not be empty")
	}
	if len(p.Tier4.Items) == 0 && len(p.Tier4.Characters) == 0 {
		errs = append(errs, "prizes.tier4 must list items or characters")
	}

	seenVersion := map[string]bool{}
	seenPool := map[string]string{} // pool id -> version
	for _, vf := range d.Versions {
		if seenVersion[vf.Version] {
			errs = append(errs, fmt.Sprintf("version %s defined twice", vf.Version))
		}
		seenVersion[vf.Version] = true

		for i, rp := range vf.Pools {
			where := fmt.Sprintf("%s.pools[%d]", vf.Version, i)
			if strings.TrimSpace(rp.ID) == "" {
				errs = append(errs, where+".id is required")
				continue
			}
			where = fmt.Sprintf("%s.pools[%s]", vf.Version, rp.ID)
			if prev, dup := seenPool[rp.ID]; dup {
				errs = append(errs, fmt.Sprintf("%s already defined in version %s", where, prev))
			}
			seenPool[rp.ID] = vf.Version

			kind, ok := parseKind(rp.Kind)
			if !ok {
				errs = append(errs, where+".kind must be one of: character, item")
			}
			if len(rp.Tier4Up) != gacha.UpCount4 {
				errs = append(errs, fmt.Sprintf("%s.tier4_up must contain exactly %d items", where, gacha.UpCount4))
			}
			if strings.TrimSpace(rp.Tier5Up) == "" {
				errs = append(errs, where+".tier5_up is required")
			}
			if kind == gacha.KindCharacter && len(p.Tier5.Standard) == 0 {
				errs = append(errs, where+" is a character pool but prizes.tier5.standard is empty")
			}
		}
	}

	if def := d.Base.DefaultPool; def != "" {
		if _, ok := seenPool[def]; !ok {
			errs = append(errs, fmt.Sprintf("default_pool %q is not defined by any version", def))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}
