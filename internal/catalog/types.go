// types.go
package catalog

// RawCatalog is catalog.yaml: the prize lists shared by every banner.
type RawCatalog struct {
	Version     string            `yaml:"version"`
	DefaultPool string            `yaml:"default_pool,omitempty"`
	Prizes      Prizes            `yaml:"prizes"`
	Names       map[string]string `yaml:"names,omitempty"` // item id -> localized display name
	Notes       string            `yaml:"notes,omitempty"`
}

type Prizes struct {
	Tier3 []string   `yaml:"tier3"`
	Tier4 Tier4Lists `yaml:"tier4"`
	Tier5 Tier5Lists `yaml:"tier5"`
}

type Tier4Lists struct {
	Items      []string `yaml:"items"`
	Characters []string `yaml:"characters"`
}

type Tier5Lists struct {
	Standard []string `yaml:"standard"` // off-banner results of character pools
}

// VersionFile is pools/<version>.yaml: the banners a game version introduced,
// plus any prizes and names that version added.
type VersionFile struct {
	Version string            `yaml:"version"`
	Pools   []RawPool         `yaml:"pools"`
	Prizes  *Prizes           `yaml:"prizes,omitempty"`
	Names   map[string]string `yaml:"names,omitempty"`
}

type RawPool struct {
	ID      string   `yaml:"id"`
	Kind    string   `yaml:"kind"` // "character" | "item" ("arms" accepted)
	Tier4Up []string `yaml:"tier4_up"`
	Tier5Up string   `yaml:"tier5_up"`
}

// Data is the merged view of catalog.yaml and every version file.
type Data struct {
	Base     RawCatalog
	Versions []VersionFile // sorted by version, oldest first
}
