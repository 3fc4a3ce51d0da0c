// Package cvss computes CVSS v3.x Base Scores from the eight base metrics.
//
// Metric values are typed categories (NETWORK, LOW, CHANGED, ...). Every
// value is checked against its dimension's enumeration before any weight is
// looked up; an unknown value is reported as an InvalidMetricValueError and
// never replaced by a default.
package cvss

// AttackVector is the AV metric.
type AttackVector string

const (
	AttackVectorNetwork  AttackVector = "NETWORK"
	AttackVectorAdjacent AttackVector = "ADJACENT"
	AttackVectorLocal    AttackVector = "LOCAL"
	AttackVectorPhysical AttackVector = "PHYSICAL"
)

func (v AttackVector) Valid() bool {
	_, ok := attackVectorWeights[v]
	return ok
}

// AttackComplexity is the AC metric.
type AttackComplexity string

const (
	AttackComplexityLow  AttackComplexity = "LOW"
	AttackComplexityHigh AttackComplexity = "HIGH"
)

func (v AttackComplexity) Valid() bool {
	_, ok := attackComplexityWeights[v]
	return ok
}

// PrivilegesRequired is the PR metric.
type PrivilegesRequired string

const (
	PrivilegesRequiredNone PrivilegesRequired = "NONE"
	PrivilegesRequiredLow  PrivilegesRequired = "LOW"
	PrivilegesRequiredHigh PrivilegesRequired = "HIGH"
)

func (v PrivilegesRequired) Valid() bool {
	_, ok := privilegesRequiredWeights[v]
	return ok
}

// UserInteraction is the UI metric.
type UserInteraction string

const (
	UserInteractionNone     UserInteraction = "NONE"
	UserInteractionRequired UserInteraction = "REQUIRED"
)

func (v UserInteraction) Valid() bool {
	_, ok := userInteractionWeights[v]
	return ok
}

// Scope is the S metric.
type Scope string

const (
	ScopeUnchanged Scope = "UNCHANGED"
	ScopeChanged   Scope = "CHANGED"
)

func (v Scope) Valid() bool {
	_, ok := scopeWeights[v]
	return ok
}

// Impact is the value type shared by the C, I and A metrics.
type Impact string

const (
	ImpactHigh Impact = "HIGH"
	ImpactLow  Impact = "LOW"
	ImpactNone Impact = "NONE"
)

func (v Impact) Valid() bool {
	_, ok := impactWeights[v]
	return ok
}

// Weights. These tables are read-only after package initialization.
var (
	attackVectorWeights = map[AttackVector]float64{
		AttackVectorNetwork:  0.85,
		AttackVectorAdjacent: 0.62,
		AttackVectorLocal:    0.55,
		AttackVectorPhysical: 0.2,
	}
	attackComplexityWeights = map[AttackComplexity]float64{
		AttackComplexityLow:  0.77,
		AttackComplexityHigh: 0.44,
	}
	privilegesRequiredWeights = map[PrivilegesRequired]float64{
		PrivilegesRequiredNone: 0.85,
		PrivilegesRequiredLow:  0.62,
		PrivilegesRequiredHigh: 0.27,
	}
	userInteractionWeights = map[UserInteraction]float64{
		UserInteractionNone:     0.85,
		UserInteractionRequired: 0.62,
	}
	scopeWeights = map[Scope]float64{
		ScopeUnchanged: 6.42,
		ScopeChanged:   7.52,
	}
	impactWeights = map[Impact]float64{
		ImpactHigh: 0.56,
		ImpactLow:  0.22,
		ImpactNone: 0,
	}
)

// Metric keys as they appear in vector strings.
const (
	KeyAttackVector       = "AV"
	KeyAttackComplexity   = "AC"
	KeyPrivilegesRequired = "PR"
	KeyUserInteraction    = "UI"
	KeyScope              = "S"
	KeyConfidentiality    = "C"
	KeyIntegrity          = "I"
	KeyAvailability       = "A"
)

// Option is one selectable category of a dimension.
type Option struct {
	Code     string // single-letter code, e.g. "N"
	Category string // full category name, e.g. "NETWORK"
}

// Dimension describes one base metric: its key, a human label and the
// ordered list of categories it accepts.
type Dimension struct {
	Key     string
	Name    string
	Options []Option
}

// Label returns the prompt label, e.g. "Attack Vector (AV)".
func (d Dimension) Label() string {
	return d.Name + " (" + d.Key + ")"
}

// Lookup resolves a single-letter code to its category.
func (d Dimension) Lookup(code string) (string, bool) {
	for _, o := range d.Options {
		if o.Code == code {
			return o.Category, true
		}
	}
	return "", false
}

// CodeFor returns the single-letter code of a category.
func (d Dimension) CodeFor(category string) (string, bool) {
	for _, o := range d.Options {
		if o.Category == category {
			return o.Code, true
		}
	}
	return "", false
}

var impactOptions = []Option{
	{"H", string(ImpactHigh)},
	{"L", string(ImpactLow)},
	{"N", string(ImpactNone)},
}

var dimensions = []Dimension{
	{KeyAttackVector, "Attack Vector", []Option{
		{"N", string(AttackVectorNetwork)},
		{"A", string(AttackVectorAdjacent)},
		{"L", string(AttackVectorLocal)},
		{"P", string(AttackVectorPhysical)},
	}},
	{KeyAttackComplexity, "Attack Complexity", []Option{
		{"L", string(AttackComplexityLow)},
		{"H", string(AttackComplexityHigh)},
	}},
	{KeyPrivilegesRequired, "Privileges Required", []Option{
		{"N", string(PrivilegesRequiredNone)},
		{"L", string(PrivilegesRequiredLow)},
		{"H", string(PrivilegesRequiredHigh)},
	}},
	{KeyUserInteraction, "User Interaction", []Option{
		{"N", string(UserInteractionNone)},
		{"R", string(UserInteractionRequired)},
	}},
	{KeyScope, "Scope", []Option{
		{"U", string(ScopeUnchanged)},
		{"C", string(ScopeChanged)},
	}},
	{KeyConfidentiality, "Confidentiality", impactOptions},
	{KeyIntegrity, "Integrity", impactOptions},
	{KeyAvailability, "Availability", impactOptions},
}

// Dimensions returns the eight base metric dimensions in prompt order:
// AV, AC, PR, UI, S, C, I, A.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	for i, d := range dimensions {
		opts := make([]Option, len(d.Options))
		copy(opts, d.Options)
		out[i] = Dimension{Key: d.Key, Name: d.Name, Options: opts}
	}
	return out
}

// DimensionFor returns the dimension with the given key.
func DimensionFor(key string) (Dimension, bool) {
	for _, d := range Dimensions() {
		if d.Key == key {
			return d, true
		}
	}
	return Dimension{}, false
}

// Weight returns the numeric weight for a category of the given dimension.
func Weight(key, category string) (float64, error) {
	var (
		w  float64
		ok bool
	)
	switch key {
	case KeyAttackVector:
		w, ok = attackVectorWeights[AttackVector(category)]
	case KeyAttackComplexity:
		w, ok = attackComplexityWeights[AttackComplexity(category)]
	case KeyPrivilegesRequired:
		w, ok = privilegesRequiredWeights[PrivilegesRequired(category)]
	case KeyUserInteraction:
		w, ok = userInteractionWeights[UserInteraction(category)]
	case KeyScope:
		w, ok = scopeWeights[Scope(category)]
	case KeyConfidentiality, KeyIntegrity, KeyAvailability:
		w, ok = impactWeights[Impact(category)]
	}
	if !ok {
		return 0, &InvalidMetricValueError{Metric: key, Value: category}
	}
	return w, nil
}

// Metrics holds one value per base metric.
type Metrics struct {
	AttackVector       AttackVector       `json:"attack_vector"`
	AttackComplexity   AttackComplexity   `json:"attack_complexity"`
	PrivilegesRequired PrivilegesRequired `json:"privileges_required"`
	UserInteraction    UserInteraction    `json:"user_interaction"`
	Scope              Scope              `json:"scope"`
	Confidentiality    Impact             `json:"confidentiality"`
	Integrity          Impact             `json:"integrity"`
	Availability       Impact             `json:"availability"`
}

// Get returns the category stored for a metric key, or "" if unset.
func (m Metrics) Get(key string) string {
	switch key {
	case KeyAttackVector:
		return string(m.AttackVector)
	case KeyAttackComplexity:
		return string(m.AttackComplexity)
	case KeyPrivilegesRequired:
		return string(m.PrivilegesRequired)
	case KeyUserInteraction:
		return string(m.UserInteraction)
	case KeyScope:
		return string(m.Scope)
	case KeyConfidentiality:
		return string(m.Confidentiality)
	case KeyIntegrity:
		return string(m.Integrity)
	case KeyAvailability:
		return string(m.Availability)
	}
	return ""
}

// Set stores a category for a metric key. The category must belong to the
// dimension's enumeration.
func (m *Metrics) Set(key, category string) error {
	if _, err := Weight(key, category); err != nil {
		return err
	}
	switch key {
	case KeyAttackVector:
		m.AttackVector = AttackVector(category)
	case KeyAttackComplexity:
		m.AttackComplexity = AttackComplexity(category)
	case KeyPrivilegesRequired:
		m.PrivilegesRequired = PrivilegesRequired(category)
	case KeyUserInteraction:
		m.UserInteraction = UserInteraction(category)
	case KeyScope:
		m.Scope = Scope(category)
	case KeyConfidentiality:
		m.Confidentiality = Impact(category)
	case KeyIntegrity:
		m.Integrity = Impact(category)
	case KeyAvailability:
		m.Availability = Impact(category)
	}
	return nil
}

// Missing returns the keys of metrics that have not been set, in
// dimension order.
func (m Metrics) Missing() []string {
	var keys []string
	for _, d := range dimensions {
		if m.Get(d.Key) == "" {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Validate checks every metric against its enumeration and returns the
// first violation in dimension order.
func (m Metrics) Validate() error {
	for _, d := range dimensions {
		if _, err := Weight(d.Key, m.Get(d.Key)); err != nil {
			return err
		}
	}
	return nil
}
