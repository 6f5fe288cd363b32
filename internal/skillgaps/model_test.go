package skillgaps

import (
	"reflect"
	"testing"
)

type fakeRecommender map[string][]string

func (f fakeRecommender) Recommendations(skill string, gap int) []string {
	return f[skill]
}

func TestDeriveGapsAndPriorities(t *testing.T) {
	a := derive(Analysis{Skills: []Skill{
		{Name: "Go", CurrentLevel: 1, RequiredLevel: 5},
		{Name: "SQL", CurrentLevel: 2, RequiredLevel: 4},
		{Name: "Docker", CurrentLevel: 3, RequiredLevel: 4},
		{Name: "Excel", CurrentLevel: 5, RequiredLevel: 2},
	}}, fakeRecommender{"Go": {"Tour of Go"}})

	wantGaps := []int{4, 2, 1, 0}
	wantPriorities := []string{PriorityHigh, PriorityMedium, PriorityLow, PriorityLow}
	for i, s := range a.Skills {
		if s.Gap != wantGaps[i] || s.Priority != wantPriorities[i] {
			t.Fatalf("skill %s: gap %d priority %s", s.Name, s.Gap, s.Priority)
		}
	}

	// met = 1 + 2 + 3 + 2 = 8, required = 15
	if a.ReadinessScore != 53 {
		t.Fatalf("readiness = %d, want 53", a.ReadinessScore)
	}

	var order []string
	for _, r := range a.Recommendations {
		order = append(order, r.Skill)
	}
	if !reflect.DeepEqual(order, []string{"Go", "SQL", "Docker"}) {
		t.Fatalf("recommendation order = %v", order)
	}
	if !reflect.DeepEqual(a.Recommendations[0].Actions, []string{"Tour of Go"}) || a.Recommendations[1].Actions == nil {
		t.Fatalf("unexpected actions %+v", a.Recommendations)
	}
}

func TestReadinessWithNothingRequired(t *testing.T) {
	if got := Readiness([]Skill{{Name: "Go", CurrentLevel: 3}}); got != 100 {
		t.Fatalf("readiness = %d, want 100", got)
	}
	if got := Readiness(nil); got != 100 {
		t.Fatalf("readiness of no skills = %d, want 100", got)
	}
}
