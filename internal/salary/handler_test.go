package salary_test

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/salary"
	"recruitedge-api/internal/shared/testutil"
	"recruitedge-api/internal/usage"
)

const base = "/api/agents/test/salary-research"

func newTestRouter(t *testing.T) (*gin.Engine, *salary.Service, *testutil.Tracker) {
	t.Helper()
	engine, err := mockai.New(0)
	if err != nil {
		t.Fatalf("mockai: %v", err)
	}
	tracker := &testutil.Tracker{}
	svc := &salary.Service{
		Repo:    salary.NewMemoryRepo(),
		AI:      engine,
		Usage:   usage.NewService(),
		Tracker: tracker,
	}
	return testutil.Router(salary.NewHandler(svc).RegisterRoutes), svc, tracker
}

func TestSalaryResearchCRUD(t *testing.T) {
	router, _, tracker := newTestRouter(t)

	resp := testutil.Do(t, router, http.MethodPost, base, "u-1", `{"jobTitle":"Data Analyst","location":"Austin","minSalary":60000,"maxSalary":90000}`)
	testutil.ExpectStatus(t, resp, http.StatusCreated)
	created := testutil.Decode[salary.Research](t, resp)
	if created.Currency != "USD" || created.Tips == nil || *created.MinSalary != 60000 {
		t.Fatalf("unexpected created %+v", created)
	}

	resp = testutil.Do(t, router, http.MethodPut, base+"/"+created.ID, "u-1", `{"medianSalary":75000}`)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	updated := testutil.Decode[salary.Research](t, resp)
	if *updated.MedianSalary != 75000 || *updated.MaxSalary != 90000 || updated.Location != "Austin" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	resp = testutil.Do(t, router, http.MethodGet, base+"?jobTitle=analyst", "u-1", nil)
	if list := testutil.Decode[testutil.ListBody[salary.Research]](t, resp); len(list.Items) != 1 {
		t.Fatalf("expected job title filter to match, got %+v", list)
	}

	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, base+"/"+created.ID, "u-2", nil), http.StatusNotFound)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, base+"/"+created.ID, "u-1", nil), http.StatusNoContent)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, base+"/"+created.ID, "u-1", nil), http.StatusNotFound)

	if got := tracker.Actions(); !reflect.DeepEqual(got, []string{"create", "update", "delete"}) {
		t.Fatalf("tracked actions = %v", got)
	}
}

func TestSalaryRangeValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := testutil.Do(t, router, http.MethodPost, base, "u-1", `{"jobTitle":"x","location":"y","minSalary":100,"maxSalary":50}`)
	testutil.ExpectStatus(t, resp, http.StatusBadRequest)
	if body := testutil.Decode[testutil.ErrorBody](t, resp); len(body.Details) == 0 || body.Details[0].Field != "maxSalary" {
		t.Fatalf("unexpected error %+v", body)
	}

	resp = testutil.Do(t, router, http.MethodPost, base, "u-1", `{"jobTitle":"x","location":"y","minSalary":100,"maxSalary":200}`)
	created := testutil.Decode[salary.Research](t, resp)
	resp = testutil.Do(t, router, http.MethodPut, base+"/"+created.ID, "u-1", `{"minSalary":500}`)
	testutil.ExpectStatus(t, resp, http.StatusBadRequest)

	for name, body := range map[string]string{
		"missing location": `{"jobTitle":"x"}`,
		"too experienced":  `{"jobTitle":"x","location":"y","yearsExperience":61}`,
		"bad currency":     `{"jobTitle":"x","location":"y","currency":"dollars"}`,
	} {
		t.Run(name, func(t *testing.T) {
			testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodPost, base, "u-1", body), http.StatusBadRequest)
		})
	}
}

func TestGenerateSalaryIsDeterministic(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	body := `{"jobTitle":"Software Engineer","location":"San Francisco","yearsExperience":5}`

	first := testutil.Decode[salary.Research](t, testutil.Do(t, router, http.MethodPost, base+"/generate", "u-1", body))
	second := testutil.Decode[salary.Research](t, testutil.Do(t, router, http.MethodPost, base+"/generate", "u-1", body))
	if first.ID == second.ID {
		t.Fatalf("expected two records")
	}
	if *first.MedianSalary != *second.MedianSalary || !reflect.DeepEqual(first.Tips, second.Tips) {
		t.Fatalf("expected identical estimates: %+v vs %+v", first, second)
	}
	p := first.Percentiles
	if p == nil || !(p.P10 <= p.P25 && p.P25 <= p.P50 && p.P50 <= p.P75 && p.P75 <= p.P90) {
		t.Fatalf("percentiles out of order: %+v", p)
	}
	if *first.MinSalary > *first.MedianSalary || *first.MedianSalary > *first.MaxSalary {
		t.Fatalf("range out of order: %+v", first)
	}
	if len(first.Tips) != 3 {
		t.Fatalf("expected 3 tips, got %v", first.Tips)
	}
	if u, _ := svc.Usage.Get(context.Background(), "u-1"); u.Used != 2 {
		t.Fatalf("expected 2 usage units, got %d", u.Used)
	}
}

type failingCreateRepo struct {
	salary.Repo
}

func (failingCreateRepo) Create(ctx context.Context, v salary.Research) error {
	return errors.New("insert failed")
}

func TestGenerateRefundsUsageWhenCreateFails(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	svc.Repo = failingCreateRepo{Repo: svc.Repo}

	resp := testutil.Do(t, router, http.MethodPost, base+"/generate", "u-1", `{"jobTitle":"Data Analyst","location":"Austin"}`)
	testutil.ExpectStatus(t, resp, http.StatusInternalServerError)

	u, err := svc.Usage.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected usage unit refunded, used=%d", u.Used)
	}
}
