package scoring

import "fmt"

// Tier is the binary build-mode choice.
type Tier string

const (
	// TierOptimized compiles with host-specific flags.
	TierOptimized Tier = "optimized"

	// TierVanilla compiles portably with no host-specific flags.
	TierVanilla Tier = "vanilla"
)

// Score thresholds for the recommendation bands. Exposed as constants so
// boundary behavior can be asserted exactly.
const (
	// StrongOptimizeScore is the minimum score for a strong
	// "optimized" recommendation.
	StrongOptimizeScore = 70

	// ModerateOptimizeScore is the minimum score for a moderate
	// "optimized" recommendation; below it the recommendation is vanilla.
	ModerateOptimizeScore = 40
)

// Band texts surfaced to the user.
const (
	strongBandText   = "excellent hardware for optimization: strongly recommend optimized mode"
	moderateBandText = "good hardware for optimization: recommend optimized mode"
	vanillaBandText  = "basic hardware detected: vanilla mode recommended for stability"
)

// Recommendation is the tier decision with its justification.
type Recommendation struct {
	Tier  Tier `json:"tier" yaml:"tier"`
	Score int  `json:"score" yaml:"score"`

	// Reasons holds the band text followed by each score contribution.
	Reasons []string `json:"reasons" yaml:"reasons"`

	// ExpectedImprovementPercent is the estimated [min, max] performance
	// gain of an optimized build over vanilla for this band.
	ExpectedImprovementPercent [2]int `json:"expected_improvement_percent" yaml:"expected_improvement_percent"`
}

// Recommend maps an optimization score to a tier. Pure and threshold-based.
func Recommend(score OptimizationScore) Recommendation {
	rec := Recommendation{Score: score.Value}

	switch {
	case score.Value >= StrongOptimizeScore:
		rec.Tier = TierOptimized
		rec.Reasons = append(rec.Reasons, strongBandText)
		rec.ExpectedImprovementPercent = [2]int{30, 45}
	case score.Value >= ModerateOptimizeScore:
		rec.Tier = TierOptimized
		rec.Reasons = append(rec.Reasons, moderateBandText)
		rec.ExpectedImprovementPercent = [2]int{20, 35}
	default:
		rec.Tier = TierVanilla
		rec.Reasons = append(rec.Reasons, vanillaBandText)
		rec.ExpectedImprovementPercent = [2]int{10, 20}
	}

	for _, c := range score.Contributions {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("%s (+%d)", c.Reason, c.Points))
	}

	return rec
}

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	return t == TierOptimized || t == TierVanilla
}

// String returns the tier name.
func (t Tier) String() string { return string(t) }
