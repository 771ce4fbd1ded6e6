package models

// RiskTolerance is the investor risk profile attached to a long-term goal.
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// ValidRiskTolerances enumerates the accepted risk tolerance values.
var ValidRiskTolerances = map[RiskTolerance]struct{}{
	RiskToleranceLow:    {},
	RiskToleranceMedium: {},
	RiskToleranceHigh:   {},
}

// ShortTermGoal is a savings target within the next year.
type ShortTermGoal struct {
	TargetNetWorth      float64      `json:"targetNetWorth"`
	TargetDate          FlexibleDate `json:"targetDate"`
	MonthlyContribution *float64     `json:"monthlyContribution,omitempty"`
}

// LongTermGoal is a savings target often many years out.
type LongTermGoal struct {
	TargetNetWorth float64       `json:"targetNetWorth"`
	TargetDate     FlexibleDate  `json:"targetDate"`
	RiskTolerance  RiskTolerance `json:"riskTolerance"`
}

// Goals holds a user's goal set. At least one of the two must be present.
// The short-term one-year window is checked once at validation time and is
// not re-checked on read; a stored goal can go stale as time passes.
type Goals struct {
	ShortTerm *ShortTermGoal `json:"shortTerm,omitempty"`
	LongTerm  *LongTermGoal  `json:"longTerm,omitempty"`
}
