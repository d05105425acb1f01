package gacha

import (
	"fmt"
	"strings"
)

// Kind is what a pool's featured slot holds.
type Kind string

const (
	KindCharacter Kind = "character"
	KindItem      Kind = "item"
)

// UpCount4 is the number of featured tier-4 items every pool carries.
const UpCount4 = 3

// RewardTable is the resolved content of one pool. Treat it as immutable
// once handed to an engine.
type RewardTable struct {
	Name  string // pool identifier
	Kind  Kind
	Tier3 []string
	Tier4 Tier4Set
	Tier5 Tier5Set
}

type Tier4Set struct {
	Up     []string // exactly UpCount4 items
	Normal []string // disjoint from Up
}

type Tier5Set struct {
	Up     string
	Normal []string // character pools only
}

// ValidateTable checks the structure of t. reason lists every problem found,
// or "pool is valid" when ok.
func ValidateTable(t RewardTable) (ok bool, reason string) {
	var errs []string

	switch t.Kind {
	case KindCharacter, KindItem:
	default:
		errs = append(errs, fmt.Sprintf("kind must be one of: %s, %s", KindCharacter, KindItem))
	}

	if len(t.Tier3) == 0 {
		errs = append(errs, "tier3 must not be empty")
	}
	errs = append(errs, blankEntries("tier3", t.Tier3)...)

	if len(t.Tier4.Up) != UpCount4 {
		errs = append(errs, fmt.Sprintf("tier4.up must contain exactly %d items, got %d", UpCount4, len(t.Tier4.Up)))
	}
	errs = append(errs, blankEntries("tier4.up", t.Tier4.Up)...)
	if len(t.Tier4.Normal) == 0 {
		errs = append(errs, "tier4.normal must not be empty")
	}
	errs = append(errs, blankEntries("tier4.normal", t.Tier4.Normal)...)
	up4 := make(map[string]struct{}, len(t.Tier4.Up))
	for _, it := range t.Tier4.Up {
		up4[it] = struct{}{}
	}
	for _, it := range t.Tier4.Normal {
		if _, dup := up4[it]; dup {
			errs = append(errs, fmt.Sprintf("tier4.normal must not contain up item %q", it))
		}
	}

	if strings.TrimSpace(t.Tier5.Up) == "" {
		errs = append(errs, "tier5.up is required")
	}
	switch t.Kind {
	case KindCharacter:
		if len(t.Tier5.Normal) == 0 {
			errs = append(errs, "tier5.normal is required for character pools")
		}
	case KindItem:
		if len(t.Tier5.Normal) > 0 {
			errs = append(errs, "tier5.normal must be empty for item pools")
		}
	}
	errs = append(errs, blankEntries("tier5.normal", t.Tier5.Normal)...)

	if len(errs) > 0 {
		return false, strings.Join(errs, "; ")
	}
	return true, "pool is valid"
}

func blankEntries(field string, items []string) []string {
	var errs []string
	for i, it := range items {
		if strings.TrimSpace(it) == "" {
			errs = append(errs, fmt.Sprintf("%s[%d] must not be blank", field, i))
		}
	}
	return errs
}
