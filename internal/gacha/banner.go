package gacha

// upGuarantee is the 50/50-with-memory split applied once a tier hits.
// - If Forced is set, or Always is true, the hit is the up-item and Forced clears.
// - Otherwise a coin flip decides; losing it sets Forced so the next hit at
//   this tier is the up-item.
type upGuarantee struct {
	Forced bool // next hit must be the up-item
	Always bool // no off-banner results at all
}

// resolve reports whether this hit is the up-item. The coin is only flipped
// when neither guarantee applies.
func (g *upGuarantee) resolve(rng RandomSource) bool {
	up := g.Forced || g.Always
	if !up {
		// coinFlip is a constant in (0,1); Chance cannot fail on it.
		up, _ = Chance(coinFlip, rng)
	}
	g.Forced = !up
	return up
}
