package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName returns the localized name of an item id, or the id in title
// case ("ROVER_HAVOC" -> "Rover Havoc") when the catalog has no entry.
func (c *Catalog) DisplayName(id string) string {
	if d, err := c.loader.Load(); err == nil {
		if name, ok := d.Base.Names[id]; ok && name != "" {
			return name
		}
	}
	return titleCase(id)
}

func titleCase(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
