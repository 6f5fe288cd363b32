package resumes_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/resumes"
	"recruitedge-api/internal/shared/storage/object"
	"recruitedge-api/internal/shared/storage/object/local"
	"recruitedge-api/internal/shared/testutil"
	"recruitedge-api/internal/usage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *resumes.Service, *testutil.Tracker) {
	t.Helper()
	engine, err := mockai.New(0)
	if err != nil {
		t.Fatalf("mockai: %v", err)
	}
	tracker := &testutil.Tracker{}
	svc := &resumes.Service{
		Repo:    resumes.NewMemoryRepo(),
		Store:   local.New(t.TempDir()),
		AI:      engine,
		Usage:   usage.NewService(),
		Tracker: tracker,
	}
	return testutil.Router(resumes.NewHandler(svc).RegisterRoutes), svc, tracker
}

func TestResumeLifecycle(t *testing.T) {
	router, _, tracker := newTestRouter(t)

	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/resumes", "u-1", map[string]any{
		"title":  "Backend Engineer",
		"skills": []string{"Go", "SQL"},
		"personalInfo": map[string]any{
			"fullName": "Ada Lovelace",
			"email":    "ada@example.com",
		},
	})
	testutil.ExpectStatus(t, resp, http.StatusCreated)
	created := testutil.Decode[resumes.Resume](t, resp)
	if created.ID == "" || created.Status != resumes.StatusDraft {
		t.Fatalf("unexpected created resume %+v", created)
	}
	if created.Completeness != 40 {
		t.Fatalf("expected completeness 40, got %d", created.Completeness)
	}

	path := "/api/agents/test/resumes/" + created.ID
	resp = testutil.Do(t, router, http.MethodGet, path, "u-1", nil)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	fetched := testutil.Decode[resumes.Resume](t, resp)
	if fetched.Title != "Backend Engineer" || !reflect.DeepEqual(fetched.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected fetched resume %+v", fetched)
	}

	resp = testutil.Do(t, router, http.MethodPut, path, "u-1", `{"title":"Staff Engineer"}`)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	updated := testutil.Decode[resumes.Resume](t, resp)
	if updated.Title != "Staff Engineer" {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if !reflect.DeepEqual(updated.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("absent fields must be untouched, got skills %v", updated.Skills)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	resp = testutil.Do(t, router, http.MethodPut, path+"/autosave", "u-1", `{"personalInfo":{"fullName":"Ada Lovelace","email":"ada@example.com","summary":"Builds APIs."}}`)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	saved := testutil.Decode[struct {
		ID      string `json:"id"`
		SavedAt string `json:"savedAt"`
	}](t, resp)
	if saved.ID != created.ID {
		t.Fatalf("autosave id mismatch: %q", saved.ID)
	}
	savedAt, err := time.Parse(time.RFC3339Nano, saved.SavedAt)
	if err != nil || !savedAt.After(updated.UpdatedAt) {
		t.Fatalf("unexpected savedAt %q (%v)", saved.SavedAt, err)
	}

	resp = testutil.Do(t, router, http.MethodDelete, path, "u-1", nil)
	testutil.ExpectStatus(t, resp, http.StatusNoContent)
	resp = testutil.Do(t, router, http.MethodGet, path, "u-1", nil)
	testutil.ExpectStatus(t, resp, http.StatusNotFound)

	want := []string{"create", "update", "autosave", "delete"}
	if got := tracker.Actions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tracked actions = %v, want %v", got, want)
	}
}

func TestResumeValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing title", body: `{"template":"modern"}`, field: "title"},
		{name: "bad status", body: `{"title":"x","status":"archived"}`, field: "status"},
		{name: "bad email", body: `{"title":"x","personalInfo":{"email":"nope"}}`, field: "personalInfo.email"},
		{name: "experience without company", body: `{"title":"x","experience":[{"position":"Dev"}]}`, field: "experience[0].company"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/resumes", "u-1", tc.body)
			testutil.ExpectStatus(t, resp, http.StatusBadRequest)
			body := testutil.Decode[testutil.ErrorBody](t, resp)
			if body.Code != "validation_error" || len(body.Details) == 0 || body.Details[0].Field != tc.field {
				t.Fatalf("unexpected error body %+v", body)
			}
		})
	}
}

func TestResumeUpdateRejectsEmptyTitle(t *testing.T) {
	router, _, _ := newTestRouter(t)
	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/resumes", "u-1", `{"title":"CV"}`)
	created := testutil.Decode[resumes.Resume](t, resp)

	resp = testutil.Do(t, router, http.MethodPut, "/api/agents/test/resumes/"+created.ID, "u-1", `{"title":""}`)
	testutil.ExpectStatus(t, resp, http.StatusBadRequest)
}

func TestResumesAreScopedToOwner(t *testing.T) {
	router, _, _ := newTestRouter(t)
	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/resumes", "owner", `{"title":"Mine"}`)
	created := testutil.Decode[resumes.Resume](t, resp)
	path := "/api/agents/test/resumes/" + created.ID

	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, path, "intruder", nil), http.StatusNotFound)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodPut, path, "intruder", `{"title":"Theirs"}`), http.StatusNotFound)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, path, "intruder", nil), http.StatusNotFound)

	resp = testutil.Do(t, router, http.MethodGet, "/api/agents/test/resumes", "intruder", nil)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	list := testutil.Decode[testutil.ListBody[resumes.Resume]](t, resp)
	if len(list.Items) != 0 || list.Limit != 20 || list.Offset != 0 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestResumesRequireUser(t *testing.T) {
	router, _, _ := newTestRouter(t)
	resp := testutil.Do(t, router, http.MethodGet, "/api/agents/test/resumes", "", nil)
	testutil.ExpectStatus(t, resp, http.StatusBadRequest)
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestResumeImportCreatesDraft(t *testing.T) {
	router, svc, tracker := newTestRouter(t)

	body, contentType := multipartUpload(t, "jane-doe.txt", []byte("Senior engineer shipping Golang services on Kubernetes with Postgres."))
	req := httptest.NewRequest(http.MethodPost, "/api/agents/test/resumes/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "u-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	testutil.ExpectStatus(t, resp, http.StatusCreated)
	res := testutil.Decode[resumes.Resume](t, resp)
	if res.Title != "jane-doe" || res.SourceFileName != "jane-doe.txt" || res.Status != resumes.StatusDraft {
		t.Fatalf("unexpected imported resume %+v", res)
	}
	if !reflect.DeepEqual(res.Skills, []string{"Go", "SQL", "Kubernetes"}) {
		t.Fatalf("unexpected detected skills %v", res.Skills)
	}
	if res.PersonalInfo.Summary == "" {
		t.Fatalf("expected summary from extracted text")
	}

	u, err := svc.Usage.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.Used != 1 {
		t.Fatalf("expected one usage unit consumed, got %d", u.Used)
	}
	if got := tracker.Actions(); !reflect.DeepEqual(got, []string{"import"}) {
		t.Fatalf("tracked actions = %v", got)
	}
}

func TestResumeImportRejectsUnsupportedFile(t *testing.T) {
	router, svc, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	req := httptest.NewRequest(http.MethodPost, "/api/agents/test/resumes/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "u-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	testutil.ExpectStatus(t, resp, http.StatusBadRequest)
	u, _ := svc.Usage.Get(context.Background(), "u-1")
	if u.Used != 0 {
		t.Fatalf("rejected imports must not consume usage, got %d", u.Used)
	}
}

func TestResumeImportHonoursUsageLimit(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	if _, err := svc.Usage.Consume(context.Background(), "u-1", usage.LimitFor(usage.PlanFree)); err != nil {
		t.Fatalf("consume: %v", err)
	}

	body, contentType := multipartUpload(t, "cv.txt", []byte("Python developer"))
	req := httptest.NewRequest(http.MethodPost, "/api/agents/test/resumes/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "u-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	testutil.ExpectStatus(t, resp, http.StatusTooManyRequests)
	if body := testutil.Decode[testutil.ErrorBody](t, resp); body.Code != "limit_reached" || body.Meta["plan"] != "free" || len(body.Details) != 0 {
		t.Fatalf("expected limit_reached, got %+v", body)
	}
}

func TestResumeImportRequiresFile(t *testing.T) {
	router, _, _ := newTestRouter(t)
	body, contentType := multipartUpload(t, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/agents/test/resumes/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "u-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	testutil.ExpectStatus(t, resp, http.StatusBadRequest)
}

type failingCreateRepo struct {
	resumes.Repo
}

func (failingCreateRepo) Create(ctx context.Context, r resumes.Resume) error {
	return errors.New("insert failed")
}

type recordingStore struct {
	object.ObjectStore
	saved   []string
	deleted []string
}

func (s *recordingStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (object.Object, error) {
	obj, err := s.ObjectStore.Save(ctx, userID, fileName, r)
	if err == nil {
		s.saved = append(s.saved, obj.Key)
	}
	return obj, err
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.ObjectStore.Delete(ctx, key)
}

func TestResumeImportCleansUpWhenCreateFails(t *testing.T) {
	engine, err := mockai.New(0)
	if err != nil {
		t.Fatalf("mockai: %v", err)
	}
	store := &recordingStore{ObjectStore: local.New(t.TempDir())}
	svc := &resumes.Service{
		Repo:    failingCreateRepo{Repo: resumes.NewMemoryRepo()},
		Store:   store,
		AI:      engine,
		Usage:   usage.NewService(),
		Tracker: &testutil.Tracker{},
	}
	router := testutil.Router(resumes.NewHandler(svc).RegisterRoutes)

	body, contentType := multipartUpload(t, "cv.txt", []byte("Python developer"))
	req := httptest.NewRequest(http.MethodPost, "/api/agents/test/resumes/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "u-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	testutil.ExpectStatus(t, resp, http.StatusInternalServerError)
	if len(store.saved) != 1 || !reflect.DeepEqual(store.deleted, store.saved) {
		t.Fatalf("expected stored upload to be removed, saved=%v deleted=%v", store.saved, store.deleted)
	}
	u, err := svc.Usage.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected usage unit refunded, used=%d", u.Used)
	}
}
