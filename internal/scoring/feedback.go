package scoring

// FeedbackTier is one of the three qualitative bands derived from a score percentage
type FeedbackTier string

const (
	TierExcellent        FeedbackTier = "excellent"
	TierGood             FeedbackTier = "good"
	TierNeedsImprovement FeedbackTier = "needs_improvement"
)

const (
	excellentThreshold = 88.0
	goodThreshold      = 66.0

	// absorbs float error in score/max*100 at the exact threshold
	thresholdEpsilon = 1e-9
)

var tierMessages = map[FeedbackTier]string{
	TierExcellent:        "Excellent performance with strong control.",
	TierGood:             "Good performance with minor inaccuracies.",
	TierNeedsImprovement: "Needs improvement.",
}

// Message returns the canned feedback string for the tier
func (t FeedbackTier) Message() string {
	if msg, ok := tierMessages[t]; ok {
		return msg
	}
	return tierMessages[TierNeedsImprovement]
}

// Rank orders tiers from lowest (0) to highest (2).
func (t FeedbackTier) Rank() int {
	switch t {
	case TierExcellent:
		return 2
	case TierGood:
		return 1
	default:
		return 0
	}
}

// Percentage returns score as a percentage of maxScore, 0 for a non-positive max.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

// FeedbackFor classifies a score by its percentage of maxScore
func FeedbackFor(score, maxScore float64) FeedbackTier {
	if maxScore <= 0 {
		return TierNeedsImprovement
	}
	return tierForPercentage(Percentage(score, maxScore))
}

// FeedbackForLegacy ORs the raw 0-9 conditions (score >= 8, score >= 6) into
// each percentage threshold, highest tier first. On scales wider than 9 this
// promotes low percentages, e.g. 8/200 is Excellent.
func FeedbackForLegacy(score, maxScore float64) FeedbackTier {
	pct := Percentage(score, maxScore)
	switch {
	case score >= 8 || pct >= excellentThreshold-thresholdEpsilon:
		return TierExcellent
	case score >= 6 || pct >= goodThreshold-thresholdEpsilon:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

func tierForPercentage(pct float64) FeedbackTier {
	switch {
	case pct >= excellentThreshold-thresholdEpsilon:
		return TierExcellent
	case pct >= goodThreshold-thresholdEpsilon:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// FeedbackFunc is the signature shared by FeedbackFor and FeedbackForLegacy
type FeedbackFunc func(score, maxScore float64) FeedbackTier

// OverallScores is the set of five scores feedback is generated for
type OverallScores struct {
	Overall       float64 `json:"overall"`
	Pronunciation float64 `json:"pronunciation"`
	Fluency       float64 `json:"fluency"`
	Vocabulary    float64 `json:"vocabulary"`
	Grammar       float64 `json:"grammar"`
}

// FeedbackSet holds one feedback message per score
type FeedbackSet struct {
	Overall       string `json:"overall" bson:"overall"`
	Pronunciation string `json:"pronunciation" bson:"pronunciation"`
	Fluency       string `json:"fluency" bson:"fluency"`
	Vocabulary    string `json:"vocabulary" bson:"vocabulary"`
	Grammar       string `json:"grammar" bson:"grammar"`
}

// IsZero reports whether no message has been set.
func (f FeedbackSet) IsZero() bool {
	return f == FeedbackSet{}
}

// FeedbackForAll applies FeedbackFor to every score independently
func FeedbackForAll(scores OverallScores, maxScore float64) FeedbackSet {
	return FeedbackForAllWith(FeedbackFor, scores, maxScore)
}

// FeedbackForAllWith is FeedbackForAll using the given classifier
func FeedbackForAllWith(fn FeedbackFunc, scores OverallScores, maxScore float64) FeedbackSet {
	if fn == nil {
		fn = FeedbackFor
	}
	return FeedbackSet{
		Overall:       fn(scores.Overall, maxScore).Message(),
		Pronunciation: fn(scores.Pronunciation, maxScore).Message(),
		Fluency:       fn(scores.Fluency, maxScore).Message(),
		Vocabulary:    fn(scores.Vocabulary, maxScore).Message(),
		Grammar:       fn(scores.Grammar, maxScore).Message(),
	}
}
