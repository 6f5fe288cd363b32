package skillgaps_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/shared/testutil"
	"recruitedge-api/internal/skillgaps"
)

const base = "/api/agents/test/skill-analyses"

func newTestRouter(t *testing.T) (*gin.Engine, *testutil.Tracker) {
	t.Helper()
	engine, err := mockai.New(0)
	if err != nil {
		t.Fatalf("mockai: %v", err)
	}
	tracker := &testutil.Tracker{}
	svc := &skillgaps.Service{Repo: skillgaps.NewMemoryRepo(), AI: engine, Tracker: tracker}
	return testutil.Router(skillgaps.NewHandler(svc).RegisterRoutes), tracker
}

func TestSkillAnalysisRecomputesOnUpdate(t *testing.T) {
	router, tracker := newTestRouter(t)

	resp := testutil.Do(t, router, http.MethodPost, base, "u-1", `{"targetRole":"Backend Engineer","skills":[{"name":"Go","currentLevel":2,"requiredLevel":5},{"name":"SQL","currentLevel":4,"requiredLevel":4}]}`)
	testutil.ExpectStatus(t, resp, http.StatusCreated)
	created := testutil.Decode[skillgaps.Analysis](t, resp)
	if created.ReadinessScore != 67 {
		t.Fatalf("readiness = %d, want 67", created.ReadinessScore)
	}
	if len(created.Recommendations) != 1 || created.Recommendations[0].Skill != "Go" || len(created.Recommendations[0].Actions) == 0 {
		t.Fatalf("unexpected recommendations %+v", created.Recommendations)
	}

	resp = testutil.Do(t, router, http.MethodPut, base+"/"+created.ID, "u-1", `{"skills":[{"name":"Go","currentLevel":5,"requiredLevel":5}]}`)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	updated := testutil.Decode[skillgaps.Analysis](t, resp)
	if updated.ReadinessScore != 100 || len(updated.Recommendations) != 0 || updated.TargetRole != "Backend Engineer" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance")
	}

	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, base+"/"+created.ID, "u-2", nil), http.StatusNotFound)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, base+"/"+created.ID, "u-1", nil), http.StatusNoContent)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, base+"/"+created.ID, "u-1", nil), http.StatusNotFound)

	if got := tracker.Actions(); !reflect.DeepEqual(got, []string{"create", "update", "delete"}) {
		t.Fatalf("tracked actions = %v", got)
	}
}

func TestSkillAnalysisValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "no skills", body: `{"targetRole":"x","skills":[]}`, field: "skills"},
		{name: "missing role", body: `{"skills":[{"name":"Go","requiredLevel":3}]}`, field: "targetRole"},
		{name: "level above five", body: `{"targetRole":"x","skills":[{"name":"Go","currentLevel":6}]}`, field: "skills[0].currentLevel"},
		{name: "unnamed skill", body: `{"targetRole":"x","skills":[{"requiredLevel":3}]}`, field: "skills[0].name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := testutil.Do(t, router, http.MethodPost, base, "u-1", tc.body)
			testutil.ExpectStatus(t, resp, http.StatusBadRequest)
			if body := testutil.Decode[testutil.ErrorBody](t, resp); len(body.Details) == 0 || body.Details[0].Field != tc.field {
				t.Fatalf("unexpected details %+v", body)
			}
		})
	}
}
