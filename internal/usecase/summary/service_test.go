package summary

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	uerrors "github.com/johnquangdev/meeting-notes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-notes/pkg/llm"
)

// fakeMeetingRepo is an in-memory MeetingRepository with status tracking
type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
	statuses []entities.MeetingStatus

	// updateErr fails Update calls, limited to updateErrStatus when set
	updateErr       error
	updateErrStatus entities.MeetingStatus
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	r := &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
	for _, m := range meetings {
		r.meetings[m.ID] = m
	}
	return r
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil && (r.updateErrStatus == "" || m.Status == r.updateErrStatus) {
		return r.updateErr
	}
	r.meetings[m.ID] = m
	r.statuses = append(r.statuses, m.Status)
	return nil
}

func (r *fakeMeetingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meetings, id)
	return nil
}

func (r *fakeMeetingRepo) List(_ context.Context, _ repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repositories.MeetingRepository = (*fakeMeetingRepo)(nil)

// fakeGenerator returns a scripted JSON payload or error
type fakeGenerator struct {
	payload string
	err     error
	calls   int
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, _ []llm.Message, _ int, _ float64, out any) error {
	g.calls++
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.payload), out)
}

func meetingWithContent(text string) *entities.Meeting {
	m := entities.NewMeeting("Sprint review")
	m.OriginalText = &text
	return m
}

func TestGenerateSummary_Success(t *testing.T) {
	meeting := meetingWithContent("Alice: we shipped the feature. Bob: let's announce Monday.")
	repo := newFakeMeetingRepo(meeting)
	gen := &fakeGenerator{payload: `{
		"summary": "The team shipped the feature and will announce it Monday.",
		"topics": ["feature launch", "announcement"],
		"decisions": ["announce Monday"],
		"discussion_points": ["rollout timing"]
	}`}

	svc := NewService(repo, gen, cache.NewMemoryStore(), zap.NewNop())

	got, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed status, got %q", got.Status)
	}
	if got.Summary == nil || *got.Summary == "" {
		t.Fatal("summary was not stored")
	}
	if topics := got.TopicList(); len(topics) != 2 || topics[0] != "feature launch" {
		t.Fatalf("unexpected topics %v", topics)
	}
	if decisions := got.DecisionList(); len(decisions) != 1 {
		t.Fatalf("unexpected decisions %v", decisions)
	}

	// The meeting must pass through processing before completing.
	if len(repo.statuses) < 2 || repo.statuses[0] != entities.MeetingStatusProcessing {
		t.Fatalf("expected processing transition first, got %v", repo.statuses)
	}
	if repo.statuses[len(repo.statuses)-1] != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed transition last, got %v", repo.statuses)
	}
}

func TestGenerateSummary_NotFound(t *testing.T) {
	svc := NewService(newFakeMeetingRepo(), &fakeGenerator{}, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), uuid.New())
	if !errors.Is(err, uerrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestGenerateSummary_NoContent(t *testing.T) {
	meeting := entities.NewMeeting("Empty")
	repo := newFakeMeetingRepo(meeting)
	gen := &fakeGenerator{}
	svc := NewService(repo, gen, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if !errors.Is(err, uerrors.ErrMeetingNoContent) {
		t.Fatalf("expected ErrMeetingNoContent, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("LLM must not be called for meetings without content")
	}
	if meeting.Status != entities.MeetingStatusDraft {
		t.Fatalf("status must stay draft, got %q", meeting.Status)
	}
}

func TestGenerateSummary_LLMFailureRevertsToDraft(t *testing.T) {
	meeting := meetingWithContent("some notes")
	repo := newFakeMeetingRepo(meeting)
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewService(repo, gen, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if !errors.Is(err, uerrors.ErrSummaryGeneration) {
		t.Fatalf("expected ErrSummaryGeneration, got %v", err)
	}
	if meeting.Status != entities.MeetingStatusDraft {
		t.Fatalf("failed run must revert to draft, got %q", meeting.Status)
	}
}

func TestGenerateSummary_StoreFailureRevertsToDraft(t *testing.T) {
	meeting := meetingWithContent("some notes")
	repo := newFakeMeetingRepo(meeting)
	repo.updateErr = errors.New("connection reset")
	repo.updateErrStatus = entities.MeetingStatusCompleted
	gen := &fakeGenerator{payload: `{"summary": "s", "topics": ["t"]}`}
	svc := NewService(repo, gen, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if !errors.Is(err, uerrors.ErrSummaryGeneration) {
		t.Fatalf("expected ErrSummaryGeneration, got %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one LLM call before the store failure, got %d", gen.calls)
	}
	if meeting.Status != entities.MeetingStatusDraft {
		t.Fatalf("failed persist must revert to draft, got %q", meeting.Status)
	}
}

func TestGenerateSummary_InvalidLLMOutput(t *testing.T) {
	meeting := meetingWithContent("some notes")
	repo := newFakeMeetingRepo(meeting)
	// Missing the required summary and topics fields.
	gen := &fakeGenerator{payload: `{"decisions": []}`}
	svc := NewService(repo, gen, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if !errors.Is(err, uerrors.ErrSummaryGeneration) {
		t.Fatalf("expected ErrSummaryGeneration, got %v", err)
	}
	if meeting.Status != entities.MeetingStatusDraft {
		t.Fatalf("invalid output must revert to draft, got %q", meeting.Status)
	}
}

func TestGenerateSummary_LockContention(t *testing.T) {
	meeting := meetingWithContent("some notes")
	repo := newFakeMeetingRepo(meeting)
	store := cache.NewMemoryStore()

	lockKey := "summary:lock:" + meeting.ID.String()
	if _, err := store.SetNX(context.Background(), lockKey, "1", time.Minute); err != nil {
		t.Fatalf("failed to seed lock: %v", err)
	}

	gen := &fakeGenerator{}
	svc := NewService(repo, gen, store, zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), meeting.ID)
	if !errors.Is(err, uerrors.ErrMeetingProcessing) {
		t.Fatalf("expected ErrMeetingProcessing while lock is held, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("LLM must not run while another request holds the lock")
	}
}

func TestGenerateSummary_ReleasesLock(t *testing.T) {
	meeting := meetingWithContent("some notes")
	repo := newFakeMeetingRepo(meeting)
	store := cache.NewMemoryStore()
	gen := &fakeGenerator{payload: `{"summary": "s", "topics": ["t"]}`}
	svc := NewService(repo, gen, store, zap.NewNop())

	if _, err := svc.GenerateSummary(context.Background(), meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lockKey := "summary:lock:" + meeting.ID.String()
	if _, ok, _ := store.Get(context.Background(), lockKey); ok {
		t.Fatal("lock must be released after the run")
	}
}

func TestStatus(t *testing.T) {
	meeting := meetingWithContent("notes")
	summaryText := "done"
	meeting.Summary = &summaryText
	meeting.Status = entities.MeetingStatusCompleted
	repo := newFakeMeetingRepo(meeting)
	svc := NewService(repo, &fakeGenerator{}, cache.NewMemoryStore(), zap.NewNop())

	report, err := svc.Status(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.MeetingID != meeting.ID {
		t.Fatal("wrong meeting id in report")
	}
	if report.Status != entities.MeetingStatusCompleted {
		t.Fatalf("unexpected status %q", report.Status)
	}
	if !report.HasSummary || !report.HasContent {
		t.Fatalf("expected has_summary and has_content, got %+v", report)
	}
}

func TestStatus_CachedReport(t *testing.T) {
	meeting := meetingWithContent("notes")
	repo := newFakeMeetingRepo(meeting)
	store := cache.NewMemoryStore()
	svc := NewService(repo, &fakeGenerator{}, store, zap.NewNop())

	first, err := svc.Status(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutate the stored meeting; the cached report should still be served.
	meeting.Status = entities.MeetingStatusProcessing

	second, err := svc.Status(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Status != first.Status {
		t.Fatalf("expected cached status %q, got %q", first.Status, second.Status)
	}
}

func TestGenerateSummary_InvalidatesStatusCache(t *testing.T) {
	meeting := meetingWithContent("notes")
	repo := newFakeMeetingRepo(meeting)
	store := cache.NewMemoryStore()
	gen := &fakeGenerator{payload: `{"summary": "s", "topics": ["t"]}`}
	svc := NewService(repo, gen, store, zap.NewNop())

	// Prime the status cache while the meeting is still draft.
	before, err := svc.Status(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.Status != entities.MeetingStatusDraft {
		t.Fatalf("expected draft before generation, got %q", before.Status)
	}

	if _, err := svc.GenerateSummary(context.Background(), meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := svc.Status(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Status != entities.MeetingStatusCompleted {
		t.Fatalf("stale cached status served after generation: %q", after.Status)
	}
}

func TestStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeMeetingRepo(), &fakeGenerator{}, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.Status(context.Background(), uuid.New())
	if !errors.Is(err, uerrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}
