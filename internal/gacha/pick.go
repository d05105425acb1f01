package gacha

// pick returns a uniform element of items. items must not be empty.
func pick(items []string, rng RandomSource) string {
	i := int(rng.Float64() * float64(len(items)))
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}
