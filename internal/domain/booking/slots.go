package booking

const (
	DefaultGranularityMin = 30
	DefaultBufferMinutes  = 40
)

// Range is a half-open interval [Start, End) in minutes since midnight.
type Range struct {
	Start int
	End   int
}

func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// SlotStarts enumerates the scheduling grid: candidate start minutes from
// open, stepping by granularity, keeping starts whose single cell still
// ends inside opening hours. The grid is duration-agnostic; whether a
// longer service fits at a given start is the evaluator's call.
func SlotStarts(openMinute, closeMinute, granularityMin int) []int {
	if granularityMin <= 0 || closeMinute <= openMinute {
		return nil
	}

	var starts []int
	for s := openMinute; s+granularityMin <= closeMinute; s += granularityMin {
		starts = append(starts, s)
	}
	return starts
}
