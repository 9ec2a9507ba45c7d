package rating

import "math"

const (
	// Rating points difference at which the stronger player is expected to win 10 to 1.
	deviation = 400

	provisionalK = 32
	establishedK = 16

	// Players with fewer completed matches than this are provisional and move faster.
	ProvisionalMatches = 30
)

type Outcome int

const (
	Win Outcome = iota + 1
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

func (o Outcome) score() float64 {
	if o == Win {
		return 1
	}
	return 0
}

// ExpectedScore is the probability, between 0 and 1, that a player rated selfRating beats
// a player rated opponentRating.
func ExpectedScore(selfRating, opponentRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponentRating-selfRating)/deviation))
}

// KFactor returns the maximum rating change for a single match.
func KFactor(matchesPlayed int) float64 {
	if matchesPlayed < ProvisionalMatches {
		return provisionalK
	}
	return establishedK
}

// ComputeRatingDelta returns the rating change for one side of a match. It is always
// at least +1 for a win and at most -1 for a loss, even when the rounded value would be 0.
func ComputeRatingDelta(selfRating, opponentRating, selfMatchesPlayed int, outcome Outcome) int {
	expected := ExpectedScore(selfRating, opponentRating)
	// math.Round rounds half away from zero
	delta := int(math.Round(KFactor(selfMatchesPlayed) * (outcome.score() - expected)))

	switch outcome {
	case Win:
		if delta < 1 {
			delta = 1
		}
	case Loss:
		if delta > -1 {
			delta = -1
		}
	}
	return delta
}
