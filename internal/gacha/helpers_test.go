package gacha

import "testing"

// scriptedRNG replays fixed values and counts how many were consumed.
type scriptedRNG struct {
	t    *testing.T
	vals []float64
	i    int
}

func (s *scriptedRNG) Float64() float64 {
	if s.i >= len(s.vals) {
		s.t.Fatalf("scriptedRNG exhausted after %d values", len(s.vals))
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func script(t *testing.T, vals ...float64) *scriptedRNG {
	return &scriptedRNG{t: t, vals: vals}
}

func characterTable() RewardTable {
	return RewardTable{
		Name:  "banner-char",
		Kind:  KindCharacter,
		Tier3: []string{"t3a", "t3b", "t3c"},
		Tier4: Tier4Set{
			Up:     []string{"u4a", "u4b", "u4c"},
			Normal: []string{"n4a", "n4b"},
		},
		Tier5: Tier5Set{
			Up:     "up5",
			Normal: []string{"n5a", "n5b"},
		},
	}
}

func itemTable() RewardTable {
	t := characterTable()
	t.Name = "banner-item"
	t.Kind = KindItem
	t.Tier5 = Tier5Set{Up: "blade5"}
	return t
}
