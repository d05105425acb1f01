package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RewardTable)
		item   bool
		reason string
	}{
		{name: "valid character", mutate: func(*RewardTable) {}},
		{name: "valid item", item: true, mutate: func(*RewardTable) {}},
		{
			name:   "bad kind",
			mutate: func(r *RewardTable) { r.Kind = "arms" },
			reason: "kind must be one of",
		},
		{
			name:   "empty tier3",
			mutate: func(r *RewardTable) { r.Tier3 = nil },
			reason: "tier3 must not be empty",
		},
		{
			name:   "four up items",
			mutate: func(r *RewardTable) { r.Tier4.Up = append(r.Tier4.Up, "u4d") },
			reason: "tier4.up must contain exactly 3 items, got 4",
		},
		{
			name:   "empty tier4 normal",
			mutate: func(r *RewardTable) { r.Tier4.Normal = nil },
			reason: "tier4.normal must not be empty",
		},
		{
			name:   "overlapping tier4",
			mutate: func(r *RewardTable) { r.Tier4.Normal = append(r.Tier4.Normal, "u4b") },
			reason: `tier4.normal must not contain up item "u4b"`,
		},
		{
			name:   "missing tier5 up",
			mutate: func(r *RewardTable) { r.Tier5.Up = " " },
			reason: "tier5.up is required",
		},
		{
			name:   "character without tier5 normal",
			mutate: func(r *RewardTable) { r.Tier5.Normal = nil },
			reason: "tier5.normal is required for character pools",
		},
		{
			name:   "item with tier5 normal",
			item:   true,
			mutate: func(r *RewardTable) { r.Tier5.Normal = []string{"n5a"} },
			reason: "tier5.normal must be empty for item pools",
		},
		{
			name:   "blank entry",
			mutate: func(r *RewardTable) { r.Tier3[1] = "" },
			reason: "tier3[1] must not be blank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := characterTable()
			if tt.item {
				table = itemTable()
			}
			tt.mutate(&table)
			ok, reason := ValidateTable(table)
			if tt.reason == "" {
				assert.True(t, ok, reason)
				assert.Equal(t, "pool is valid", reason)
				return
			}
			assert.False(t, ok)
			assert.Contains(t, reason, tt.reason)
		})
	}
}

func TestValidateTableReportsEverything(t *testing.T) {
	ok, reason := ValidateTable(RewardTable{Kind: KindCharacter})
	assert.False(t, ok)
	for _, want := range []string{"tier3", "tier4.up", "tier4.normal", "tier5.up", "tier5.normal"} {
		assert.Contains(t, reason, want)
	}
}
