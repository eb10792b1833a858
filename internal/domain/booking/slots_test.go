package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotStarts(t *testing.T) {
	// 10:00 to 18:00 on a 30-minute grid: 10:00 through 17:30.
	starts := SlotStarts(600, 1080, 30)
	require.Len(t, starts, 16)
	require.Equal(t, 600, starts[0])
	require.Equal(t, 1050, starts[len(starts)-1])
}

func TestSlotStartsPartialTail(t *testing.T) {
	// Closing at 17:45 drops the 17:30 start; its cell would run past close.
	starts := SlotStarts(600, 1065, 30)
	require.Equal(t, 1020, starts[len(starts)-1])
}

func TestSlotStartsDegenerate(t *testing.T) {
	require.Nil(t, SlotStarts(600, 600, 30))
	require.Nil(t, SlotStarts(600, 500, 30))
	require.Nil(t, SlotStarts(600, 1080, 0))
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{Start: 600, End: 660}

	cases := []struct {
		name string
		r    Range
		want bool
	}{
		{"identical", Range{600, 660}, true},
		{"contained", Range{615, 645}, true},
		{"straddles start", Range{570, 630}, true},
		{"straddles end", Range{630, 690}, true},
		{"touching before", Range{540, 600}, false},
		{"touching after", Range{660, 720}, false},
		{"disjoint", Range{720, 780}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, base.Overlaps(tc.r))
			require.Equal(t, tc.want, tc.r.Overlaps(base))
		})
	}
}
