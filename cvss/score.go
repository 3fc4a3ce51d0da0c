package cvss

import (
	"fmt"
	"math"
)

// Result is the outcome of scoring one metric set.
type Result struct {
	BaseScore           float64  `json:"base_score"`
	ImpactScore         float64  `json:"impact_score"`
	ExploitabilityScore float64  `json:"exploitability_score"`
	Severity            Severity `json:"severity"`
	Vector              string   `json:"vector"`
}

// Calculator scores metric sets with a fixed rounding policy. The zero
// value uses RoundNearest. A Calculator holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	Rounding Rounding
}

// NewCalculator returns a Calculator using the given rounding policy.
func NewCalculator(rounding Rounding) *Calculator {
	return &Calculator{Rounding: rounding}
}

// Score validates m and computes its base score and sub-scores.
func (c *Calculator) Score(m Metrics) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	round := c.Rounding.roundFunc()
	impact, exploitability, base := compute(m)

	res := &Result{
		BaseScore:           round(base),
		ExploitabilityScore: round(exploitability),
		Vector:              m.Vector(),
	}
	if impact > 0 {
		res.ImpactScore = round(impact)
	}
	res.Severity = SeverityFor(res.BaseScore)
	return res, nil
}

// compute returns the unrounded impact, exploitability and base score for a
// validated metric set.
func compute(m Metrics) (impact, exploitability, base float64) {
	av := attackVectorWeights[m.AttackVector]
	ac := attackComplexityWeights[m.AttackComplexity]
	pr := privilegesRequiredWeights[m.PrivilegesRequired]
	ui := userInteractionWeights[m.UserInteraction]
	c := impactWeights[m.Confidentiality]
	i := impactWeights[m.Integrity]
	a := impactWeights[m.Availability]

	impactBase := 1 - ((1 - c) * (1 - i) * (1 - a))
	if m.Scope == ScopeUnchanged {
		impact = 6.42 * impactBase
	} else {
		impact = 7.52*(impactBase-0.029) - 3.25*math.Pow(impactBase*0.9731-0.02, 13)
	}

	exploitability = 8.22 * av * ac * pr * ui

	switch {
	case impact <= 0:
		base = 0
	case m.Scope == ScopeUnchanged:
		base = math.Min(impact+exploitability, 10)
	default:
		base = math.Min(1.08*(impact+exploitability), 10)
	}
	return impact, exploitability, base
}

// CalculateBaseScore scores eight category names (e.g. "NETWORK", "LOW")
// with the default RoundNearest policy.
func CalculateBaseScore(av, ac, pr, ui, s, c, i, a string) (float64, error) {
	m := Metrics{
		AttackVector:       AttackVector(av),
		AttackComplexity:   AttackComplexity(ac),
		PrivilegesRequired: PrivilegesRequired(pr),
		UserInteraction:    UserInteraction(ui),
		Scope:              Scope(s),
		Confidentiality:    Impact(c),
		Integrity:          Impact(i),
		Availability:       Impact(a),
	}
	res, err := NewCalculator(RoundNearest).Score(m)
	if err != nil {
		return 0, fmt.Errorf("cvss.CalculateBaseScore: %w", err)
	}
	return res.BaseScore, nil
}
