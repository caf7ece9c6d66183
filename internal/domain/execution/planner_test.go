package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/termrig/termrig/internal/domain/step"
)

func TestPlanner_Plan(t *testing.T) {
	a := newFakeStep("brew:formula:fzf", step.StatusNeedsApply)
	b := newFakeStep("brew:formula:ripgrep", step.StatusSatisfied)

	plan, err := NewPlanner().Plan(context.Background(), []step.Step{a, b})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if plan.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", plan.Len())
	}
	if !plan.HasChanges() {
		t.Error("plan should report changes")
	}

	entries := plan.Entries()
	if entries[0].Status() != step.StatusNeedsApply {
		t.Errorf("entries[0].Status() = %v", entries[0].Status())
	}
	if entries[0].Diff().IsEmpty() {
		t.Error("needs-apply entry should carry a diff")
	}
	if entries[1].Status() != step.StatusSatisfied {
		t.Errorf("entries[1].Status() = %v", entries[1].Status())
	}
	if !entries[1].Diff().IsEmpty() {
		t.Error("satisfied entry should not carry a diff")
	}
}

func TestPlanner_PreservesDeclaredOrder(t *testing.T) {
	ids := []string{
		"brew:bootstrap:homebrew",
		"shell:framework:oh-my-zsh",
		"shell:theme:powerlevel10k",
		"brew:formula:fzf",
	}
	steps := make([]step.Step, 0, len(ids))
	for _, id := range ids {
		steps = append(steps, newFakeStep(id, step.StatusNeedsApply))
	}

	plan, err := NewPlanner().Plan(context.Background(), steps)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	for i, entry := range plan.Entries() {
		if entry.Step().ID().String() != ids[i] {
			t.Errorf("entry[%d] = %s, want %s", i, entry.Step().ID(), ids[i])
		}
	}
}

func TestPlanner_CheckError(t *testing.T) {
	s := newFakeStep("brew:formula:fzf", step.StatusNeedsApply)
	s.checkErr = errors.New("brew list failed")

	_, err := NewPlanner().Plan(context.Background(), []step.Step{s})
	if err == nil {
		t.Fatal("Plan() should propagate check errors")
	}

	var perr *step.ProvisionError
	if !errors.As(err, &perr) || perr.Code != step.ErrCodeCheckFailed {
		t.Errorf("error = %v, want check failure", err)
	}
}

func TestPlan_Summary(t *testing.T) {
	plan := NewPlan()
	plan.Add(NewPlanEntry(newFakeStep("a:b:c", step.StatusNeedsApply), step.StatusNeedsApply, step.Diff{}))
	plan.Add(NewPlanEntry(newFakeStep("a:b:d", step.StatusSatisfied), step.StatusSatisfied, step.Diff{}))
	plan.Add(NewPlanEntry(newFakeStep("a:b:e", step.StatusSatisfied), step.StatusSatisfied, step.Diff{}))

	summary := plan.Summary()
	if summary.Total != 3 || summary.NeedsApply != 1 || summary.Satisfied != 2 {
		t.Errorf("Summary() = %+v", summary)
	}
}

func TestPlan_Empty(t *testing.T) {
	plan := NewPlan()
	if !plan.IsEmpty() {
		t.Error("new plan should be empty")
	}
	if plan.HasChanges() {
		t.Error("empty plan has no changes")
	}
}
