package models

// ApplyDelta applies a bounded increment/decrement to a vote or like counter.
// The result is floored at zero and has no upper bound, so a cancel that was
// never preceded by a vote is a harmless no-op rather than an error.
func ApplyDelta(counter, delta int) int {
	if v := counter + delta; v > 0 {
		return v
	}
	return 0
}
