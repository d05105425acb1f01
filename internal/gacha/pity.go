package gacha

// hardPity tracks draws since the last hit at one tier.
// The hit rule shares the unit's roll r with the other tiers, so it takes r
// instead of drawing its own sample.
type hardPity struct {
	Max   int // threshold count that forces a hit
	Count int // draws since last hit
}

// step counts one draw and reports whether it hits.
// - If the count reaches Max the draw is guaranteed to hit.
// - Otherwise it hits when r < p.
// - On hit, Count resets to 0.
func (hp *hardPity) step(r, p float64) bool {
	hp.Count++
	if hp.Count >= hp.Max || r < p {
		hp.Count = 0
		return true
	}
	return false
}

// clampCount keeps an inherited count inside [0, max-1] so a resumed session
// never enters a step already past hard pity.
func clampCount(c, max int) int {
	if c < 0 {
		return 0
	}
	if c >= max {
		return max - 1
	}
	return c
}
