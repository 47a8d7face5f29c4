package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/lingua-forge/internal/ai"
	"github.com/yourusername/lingua-forge/internal/components"
)

func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	pdfRoutes := router.Group("/pdf")
	{
		pdfRoutes.POST("", CreateHandler(m))
		pdfRoutes.GET("", ListHandler(m))
		pdfRoutes.GET("/:id", GetHandler(m))
		pdfRoutes.GET("/:id/download", DownloadHandler(m))
		pdfRoutes.DELETE("/:id", DeleteHandler(m))
	}
	return router
}

func postJob(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/pdf", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateJobEndpoint(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	rec := postJob(t, router, `{"originalLanguage":"en","targetLanguage":"ro","level":"beginner","skipAi":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if _, err := uuid.Parse(payload["id"]); err != nil {
		t.Fatalf("id is not a uuid: %q", payload["id"])
	}

	// 作成直後から参照できる
	req := httptest.NewRequest(http.MethodGet, "/pdf/"+payload["id"], nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateJobMissingFields(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	rec := postJob(t, router, `{"targetLanguage":"ro"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateJobUnknownTemplate(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	body := `{"originalLanguage":"en","targetLanguage":"ro","level":"beginner","skipAi":true,"templateId":"` + uuid.NewString() + `"}`
	rec := postJob(t, router, body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	// ジョブレコードは作られない
	req := httptest.NewRequest(http.MethodGet, "/pdf", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var list []Job
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no jobs, got %d", len(list))
	}
}

func TestGetJobMalformedID(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/pdf/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/pdf/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestDownloadIsOneShot(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	job, err := m.Create(validRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	waitForSettled(t, m, job.ID)

	// 1回目: 200 とPDFバイナリ
	req := httptest.NewRequest(http.MethodGet, "/pdf/"+job.ID+"/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content-type: %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Fatal("expected Content-Disposition header")
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("unexpected body: %q", rec.Body.Bytes())
	}

	// 2回目: 成果物は削除済みで 404、ジョブ自体は completed のまま
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pdf/"+job.ID+"/download", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status on second download: %d", rec.Code)
	}
	current, ok := m.Get(job.ID)
	if !ok || current.Status != StatusCompleted {
		t.Fatalf("job status changed: %#v", current)
	}
}

func TestDownloadBeforeCompletion(t *testing.T) {
	// 生成を完了させないため、ブロックするジェネレーターを使う
	block := make(chan struct{})
	generator := &blockingGenerator{release: block}
	m := newTestManager(t, generator, nil)
	router := newTestRouter(m)
	defer close(block)

	req := validRequest()
	req.SkipAI = false
	job, err := m.Create(req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pdf/"+job.ID+"/download", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestDeleteJobEndpointIdempotent(t *testing.T) {
	m := newTestManager(t, nil, nil)
	router := newTestRouter(m)

	job, err := m.Create(validRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	waitForSettled(t, m, job.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pdf/"+job.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	// 存在しなくなったIDでも 204
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pdf/"+job.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestFailedJobRemainsQueryable(t *testing.T) {
	m := newTestManager(t, &stubGenerator{err: errTest}, nil)
	router := newTestRouter(m)

	req := validRequest()
	req.SkipAI = false
	job, err := m.Create(req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	waitForSettled(t, m, job.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pdf/"+job.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["status"] != string(StatusFailed) {
		t.Fatalf("unexpected status field: %v", payload["status"])
	}
	if payload["error"] == "" || payload["error"] == nil {
		t.Fatal("error message missing from failed job")
	}
}

type blockingGenerator struct {
	release chan struct{}
}

func (g *blockingGenerator) GenerateComponents(_ context.Context, _ ai.Request) ([]components.Component, error) {
	<-g.release
	return nil, errTest
}

var errTest = errors.New("test failure")
