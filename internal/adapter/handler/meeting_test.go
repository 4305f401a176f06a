package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	summaryUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/summary"
	"github.com/johnquangdev/meeting-notes/pkg/llm"
	pkgvalidator "github.com/johnquangdev/meeting-notes/pkg/validator"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	r := &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
	for _, m := range meetings {
		r.meetings[m.ID] = m
	}
	return r
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMeetingRepo) FindByIDWithActionItems(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	m, ok := r.meetings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.meetings, id)
	return nil
}

func (r *fakeMeetingRepo) List(_ context.Context, _ repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repositories.MeetingRepository = (*fakeMeetingRepo)(nil)

type fakeGenerator struct {
	payload string
	err     error
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, _ []llm.Message, _ int, _ float64, out any) error {
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.payload), out)
}

func newTestHandler(repo *fakeMeetingRepo, gen *fakeGenerator) (*echo.Echo, *Meeting) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	logger := zap.NewNop()
	meetingService := meetingUsecase.NewService(repo, nil, logger)
	summaryService := summaryUsecase.NewService(repo, gen, cache.NewMemoryStore(), logger)

	return e, NewMeetingHandler(meetingService, summaryService, logger)
}

type responseEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Info    string          `json:"info"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestCreateMeetingHandler(t *testing.T) {
	repo := newFakeMeetingRepo()
	e, h := newTestHandler(repo, &fakeGenerator{})

	body := `{"title": "Q4 Planning", "participants": "Alice, Bob"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateMeeting(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeResponse(t, rec)
	var data struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Title != "Q4 Planning" {
		t.Fatalf("unexpected title %q", data.Title)
	}
	if data.Status != "draft" {
		t.Fatalf("expected draft status, got %q", data.Status)
	}
	if len(repo.meetings) != 1 {
		t.Fatal("meeting not persisted")
	}
}

func TestCreateMeetingHandler_MissingTitle(t *testing.T) {
	e, h := newTestHandler(newFakeMeetingRepo(), &fakeGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateMeeting(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetMeetingHandler_NotFound(t *testing.T) {
	e, h := newTestHandler(newFakeMeetingRepo(), &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.GetMeeting(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetMeetingHandler_InvalidID(t *testing.T) {
	e, h := newTestHandler(newFakeMeetingRepo(), &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.GetMeeting(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadTranscriptHandler_RawBody(t *testing.T) {
	m := entities.NewMeeting("Sync")
	repo := newFakeMeetingRepo(m)
	e, h := newTestHandler(repo, &fakeGenerator{})

	transcript := "Alice: welcome everyone"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(transcript))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.UploadTranscript(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeResponse(t, rec)
	var data struct {
		MeetingID string `json:"meeting_id"`
		Status    string `json:"status"`
		Size      int    `json:"size"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Size != len(transcript) {
		t.Fatalf("unexpected size %d", data.Size)
	}
	if m.OriginalText == nil || *m.OriginalText != transcript {
		t.Fatal("transcript not stored on the meeting")
	}
}

func TestGenerateSummaryHandler(t *testing.T) {
	m := entities.NewMeeting("Sync")
	text := "Alice: we decided to launch Friday."
	m.OriginalText = &text
	repo := newFakeMeetingRepo(m)
	gen := &fakeGenerator{payload: `{
		"summary": "The team agreed to launch on Friday.",
		"topics": ["launch"],
		"decisions": ["launch Friday"],
		"discussion_points": []
	}`}
	e, h := newTestHandler(repo, gen)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.GenerateSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeResponse(t, rec)
	var data struct {
		Status  string   `json:"status"`
		Summary *string  `json:"summary"`
		Topics  []string `json:"topics"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Status != "completed" {
		t.Fatalf("expected completed status, got %q", data.Status)
	}
	if data.Summary == nil || *data.Summary == "" {
		t.Fatal("summary missing from response")
	}
	if len(data.Topics) != 1 || data.Topics[0] != "launch" {
		t.Fatalf("unexpected topics %v", data.Topics)
	}
}

func TestGenerateSummaryHandler_RateLimited(t *testing.T) {
	m := entities.NewMeeting("Sync")
	text := "Alice: notes"
	m.OriginalText = &text
	repo := newFakeMeetingRepo(m)
	gen := &fakeGenerator{err: fmt.Errorf("%w: provider throttled", llm.ErrRateLimit)}
	e, h := newTestHandler(repo, gen)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.GenerateSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for rate-limited generation, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListTranscriptArchivesHandler(t *testing.T) {
	m := entities.NewMeeting("Sync")
	repo := newFakeMeetingRepo(m)
	e, h := newTestHandler(repo, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.ListTranscriptArchives(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeResponse(t, rec)
	var data struct {
		MeetingID string   `json:"meeting_id"`
		Archives  []string `json:"archives"`
		Count     int      `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.MeetingID != m.ID.String() {
		t.Fatalf("unexpected meeting id %q", data.MeetingID)
	}
	if data.Archives == nil || data.Count != 0 {
		t.Fatalf("expected empty archive list without storage, got %+v", data)
	}
}

func TestSummaryStatusHandler_NoContent(t *testing.T) {
	m := entities.NewMeeting("Empty")
	repo := newFakeMeetingRepo(m)
	e, h := newTestHandler(repo, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.SummaryStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeResponse(t, rec)
	var data struct {
		Status     string `json:"status"`
		HasSummary bool   `json:"has_summary"`
		HasContent bool   `json:"has_content"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Status != "draft" || data.HasSummary || data.HasContent {
		t.Fatalf("unexpected status report %+v", data)
	}
}
