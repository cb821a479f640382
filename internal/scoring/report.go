package scoring

// Colour bands used by the skill bars and charts
const (
	BandGreen  = "green"
	BandYellow = "yellow"
	BandRed    = "red"
)

// Score card bands for the overall score
const (
	CardExcellent      = "excellent"
	CardGreat          = "great"
	CardKeepPracticing = "keep-practicing"
)

type SkillScores struct {
	Pronunciation float64 `json:"pronunciation" bson:"pronunciation"`
	Fluency       float64 `json:"fluency" bson:"fluency"`
	Vocabulary    float64 `json:"vocabulary" bson:"vocabulary"`
	Grammar       float64 `json:"grammar" bson:"grammar"`
}

// Values returns the scores in chart order
func (s SkillScores) Values() [4]float64 {
	return [4]float64{s.Pronunciation, s.Fluency, s.Vocabulary, s.Grammar}
}

// SkillNames matches the order of SkillScores.Values
var SkillNames = [4]string{"pronunciation", "fluency", "vocabulary", "grammar"}

type SkillReport struct {
	Skill      string       `json:"skill"`
	Score      float64      `json:"score"`
	Percentage float64      `json:"percentage"`
	Tier       FeedbackTier `json:"tier"`
	Feedback   string       `json:"feedback"`
	Band       string       `json:"band"`
}

// ExamReport is the chart-ready view of a single exam
type ExamReport struct {
	Exam              ExamConfig           `json:"exam"`
	OverallScore      float64              `json:"overallScore"`
	OverallPercentage float64              `json:"overallPercentage"`
	OverallTier       FeedbackTier         `json:"overallTier"`
	ScoreCard         string               `json:"scoreCard"`
	Skills            []SkillReport        `json:"skills"`
	Feedback          FeedbackSet          `json:"feedback"`
	Conversions       map[ExamType]float64 `json:"conversions,omitempty"`
}

// ReportOptions tunes BuildExamReport
type ReportOptions struct {
	Feedback    FeedbackFunc
	Conversions bool
}

// BuildExamReport assembles percentages, tiers and bands for one exam
func BuildExamReport(examType ExamType, overall float64, skills SkillScores, opts ReportOptions) (*ExamReport, error) {
	cfg, err := Lookup(examType)
	if err != nil {
		return nil, err
	}

	fn := opts.Feedback
	if fn == nil {
		fn = FeedbackFor
	}

	overallPct := Percentage(overall, cfg.MaxScore)
	report := &ExamReport{
		Exam:              cfg,
		OverallScore:      overall,
		OverallPercentage: overallPct,
		OverallTier:       fn(overall, cfg.MaxScore),
		ScoreCard:         ScoreCardBand(overallPct),
		Skills:            make([]SkillReport, 0, len(SkillNames)),
	}

	for i, v := range skills.Values() {
		tier := fn(v, cfg.MaxScore)
		pct := Percentage(v, cfg.MaxScore)
		report.Skills = append(report.Skills, SkillReport{
			Skill:      SkillNames[i],
			Score:      v,
			Percentage: pct,
			Tier:       tier,
			Feedback:   tier.Message(),
			Band:       SkillBand(pct),
		})
	}

	report.Feedback = FeedbackForAllWith(fn, OverallScores{
		Overall:       overall,
		Pronunciation: skills.Pronunciation,
		Fluency:       skills.Fluency,
		Vocabulary:    skills.Vocabulary,
		Grammar:       skills.Grammar,
	}, cfg.MaxScore)

	if opts.Conversions {
		conv, err := ConvertToAll(overall, examType)
		if err != nil {
			return nil, err
		}
		report.Conversions = conv
	}

	return report, nil
}

// SkillBand maps a percentage to the bar colour
func SkillBand(pct float64) string {
	switch tierForPercentage(pct) {
	case TierExcellent:
		return BandGreen
	case TierGood:
		return BandYellow
	default:
		return BandRed
	}
}

// ScoreCardBand maps the overall percentage to the score card artwork
func ScoreCardBand(pct float64) string {
	switch {
	case pct >= 83:
		return CardExcellent
	case pct >= 78:
		return CardGreat
	default:
		return CardKeepPracticing
	}
}
