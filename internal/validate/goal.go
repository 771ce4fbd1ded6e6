package validate

import (
	"time"

	"github.com/kwatts/networth/internal/models"
)

// timeNow is a seam for tests exercising the one-year window.
var timeNow = time.Now

// ValidateGoals checks a goal set: at least one of the short-term and
// long-term goals must be present, targets must be positive, and the
// short-term target date must fall within one year of now.
//
// The one-year window is evaluated once, against the wall clock at call time.
// A stored goal is not re-validated on read, so elapsed time can make a
// previously valid short-term goal stale; callers should treat the constraint
// as advisory after storage.
func ValidateGoals(g models.Goals) (models.Goals, error) {
	verr := &ValidationError{}

	if g.ShortTerm == nil && g.LongTerm == nil {
		verr.add("goals", "provide at least one goal (short term or long term)")
		return models.Goals{}, verr
	}

	if st := g.ShortTerm; st != nil {
		if st.TargetNetWorth <= 0 {
			verr.add("shortTerm.targetNetWorth", "must be > 0")
		}
		if st.TargetDate.IsZero() {
			verr.add("shortTerm.targetDate", "is required")
		} else if st.TargetDate.After(timeNow().AddDate(1, 0, 0)) {
			verr.add("shortTerm.targetDate", "should be within 1 year")
		}
		if st.MonthlyContribution != nil && *st.MonthlyContribution < 0 {
			verr.add("shortTerm.monthlyContribution", "must be >= 0")
		}
	}

	if lt := g.LongTerm; lt != nil {
		if lt.TargetNetWorth <= 0 {
			verr.add("longTerm.targetNetWorth", "must be > 0")
		}
		if lt.TargetDate.IsZero() {
			verr.add("longTerm.targetDate", "is required")
		}
		if _, ok := models.ValidRiskTolerances[lt.RiskTolerance]; !ok {
			verr.add("longTerm.riskTolerance", "must be one of low, medium or high")
		}
	}

	if err := verr.orNil(); err != nil {
		return models.Goals{}, err
	}
	return g, nil
}
