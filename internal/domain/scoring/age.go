package scoring

import "math"

// ageBrackets converts a grade-like score to a reader age. Index 0 is a
// rounded score of 1; the last two grades share the ceiling of 24.
var ageBrackets = [...]int{6, 7, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 24, 24}

// AgeBrackets returns a copy of the age table.
func AgeBrackets() []int {
	out := make([]int, len(ageBrackets))
	copy(out, ageBrackets[:])
	return out
}

// AgeFor maps a score to an estimated reader age. The bracket index is the
// score rounded half up, minus one. Scores whose index falls outside the table
// fail with *OutOfRangeScoreError.
func AgeFor(score float64) (int, error) {
	return ageFor("", score)
}

func ageFor(kind string, score float64) (int, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, &OutOfRangeScoreError{Kind: kind, Score: score, Index: -1}
	}
	rounded := math.Floor(score + 0.5)
	if rounded < 1 || rounded > float64(len(ageBrackets)) {
		idx := -1
		if math.Abs(rounded) < math.MaxInt32 {
			idx = int(rounded) - 1
		}
		return 0, &OutOfRangeScoreError{Kind: kind, Score: score, Index: idx}
	}
	return ageBrackets[int(rounded)-1], nil
}

// Round2 rounds x half up to two decimal places.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
