package validate

import (
	"testing"
	"time"

	"github.com/kwatts/networth/internal/models"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
	return now
}

func TestValidateGoalsRequiresAtLeastOne(t *testing.T) {
	fixedNow(t)

	_, err := ValidateGoals(models.Goals{})
	paths := fieldPaths(t, err)
	if _, ok := paths["goals"]; !ok {
		t.Errorf("expected a violation at goals, got %v", paths)
	}
}

func TestValidateGoalsShortTermWithinOneYear(t *testing.T) {
	now := fixedNow(t)

	g := models.Goals{
		ShortTerm: &models.ShortTermGoal{
			TargetNetWorth: 50000,
			TargetDate:     models.FlexibleDate{Time: now.AddDate(0, 6, 0)},
		},
	}
	if _, err := ValidateGoals(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.ShortTerm.TargetDate = models.FlexibleDate{Time: now.AddDate(2, 0, 0)}
	_, err := ValidateGoals(g)
	paths := fieldPaths(t, err)
	if reason, ok := paths["shortTerm.targetDate"]; !ok || reason != "should be within 1 year" {
		t.Errorf("expected shortTerm.targetDate violation, got %v", paths)
	}
}

func TestValidateGoalsShortTermTarget(t *testing.T) {
	now := fixedNow(t)

	contribution := -100.0
	g := models.Goals{
		ShortTerm: &models.ShortTermGoal{
			TargetNetWorth:      0,
			TargetDate:          models.FlexibleDate{Time: now.AddDate(0, 3, 0)},
			MonthlyContribution: &contribution,
		},
	}
	_, err := ValidateGoals(g)
	paths := fieldPaths(t, err)
	if _, ok := paths["shortTerm.targetNetWorth"]; !ok {
		t.Errorf("expected shortTerm.targetNetWorth violation, got %v", paths)
	}
	if _, ok := paths["shortTerm.monthlyContribution"]; !ok {
		t.Errorf("expected shortTerm.monthlyContribution violation, got %v", paths)
	}
}

func TestValidateGoalsLongTermRiskTolerance(t *testing.T) {
	now := fixedNow(t)

	g := models.Goals{
		LongTerm: &models.LongTermGoal{
			TargetNetWorth: 1000000,
			TargetDate:     models.FlexibleDate{Time: now.AddDate(20, 0, 0)},
			RiskTolerance:  "yolo",
		},
	}
	_, err := ValidateGoals(g)
	paths := fieldPaths(t, err)
	if _, ok := paths["longTerm.riskTolerance"]; !ok {
		t.Errorf("expected longTerm.riskTolerance violation, got %v", paths)
	}

	g.LongTerm.RiskTolerance = models.RiskToleranceHigh
	if _, err := ValidateGoals(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateGoalsLongTermHasNoDateCeiling(t *testing.T) {
	now := fixedNow(t)

	g := models.Goals{
		LongTerm: &models.LongTermGoal{
			TargetNetWorth: 2000000,
			TargetDate:     models.FlexibleDate{Time: now.AddDate(30, 0, 0)},
			RiskTolerance:  models.RiskToleranceLow,
		},
	}
	if _, err := ValidateGoals(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
