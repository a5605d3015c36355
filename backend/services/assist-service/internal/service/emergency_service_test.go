package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"everse/backend/services/assist-service/internal/models"
	"everse/backend/services/assist-service/internal/repository"
)

type memRepo struct {
	mu    sync.Mutex
	items map[string]models.EmergencyRequest
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]models.EmergencyRequest{}}
}

func (m *memRepo) Create(_ context.Context, req *models.EmergencyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[req.ID] = *req
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (*models.EmergencyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.items[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	return &req, nil
}

func (m *memRepo) List(_ context.Context, f models.Filter) ([]models.EmergencyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(f.Query)
	out := make([]models.EmergencyRequest, 0)
	for _, r := range m.items {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.RequesterName), q) &&
			!strings.Contains(strings.ToLower(r.CarModel), q) &&
			!strings.Contains(strings.ToLower(r.Location), q) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, from, to string, at time.Time) (*models.EmergencyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.items[id]
	if !ok || req.Status != from {
		return nil, repository.ErrStatusChanged
	}
	req.Status = to
	req.UpdatedAt = at
	m.items[id] = req
	return &req, nil
}

func (m *memRepo) Stats(_ context.Context) (models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s models.Stats
	for _, r := range m.items {
		s.Add(r.Status, 1)
	}
	return s, nil
}

type recordingPublisher struct {
	events []models.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt models.Event) error {
	p.events = append(p.events, evt)
	return p.err
}

func ptr[T any](v T) *T { return &v }

func validInput() CreateInput {
	return CreateInput{
		Latitude:      ptr(12.97161),
		Longitude:     ptr(77.59463),
		CarModel:      "Tata Nexon EV",
		ChargerType:   "CCS2",
		RequesterName: "Asha",
		Phone:         "+91-9000000000",
		BatteryLevel:  ptr(5),
		Priority:      "High",
	}
}

func newTestService() (*EmergencyService, *memRepo, *recordingPublisher) {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	return NewEmergencyService(repo, pub, zap.NewNop()), repo, pub
}

func TestCreateStoresPendingRequestAndPublishes(t *testing.T) {
	svc, repo, pub := newTestService()

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, models.PriorityHigh, req.Priority)
	assert.Equal(t, "12.9716, 77.5946", req.Location)
	assert.False(t, req.Timestamp.IsZero())
	assert.Len(t, repo.items, 1)

	require.Len(t, pub.events, 1)
	assert.Equal(t, models.EventCreated, pub.events[0].Type)
	assert.Equal(t, req.ID, pub.events[0].Request.ID)
}

func TestCreateAcceptsZeroBattery(t *testing.T) {
	svc, _, _ := newTestService()
	in := validInput()
	in.BatteryLevel = ptr(0)
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	cases := map[string]func(in *CreateInput){
		"missing latitude": func(in *CreateInput) { in.Latitude = nil },
		"missing battery":  func(in *CreateInput) { in.BatteryLevel = nil },
		"blank name":       func(in *CreateInput) { in.RequesterName = "  " },
		"blank phone":      func(in *CreateInput) { in.Phone = "" },
		"battery too high": func(in *CreateInput) { in.BatteryLevel = ptr(101) },
		"battery negative": func(in *CreateInput) { in.BatteryLevel = ptr(-1) },
		"bad priority":     func(in *CreateInput) { in.Priority = "urgent" },
		"bad latitude":     func(in *CreateInput) { in.Latitude = ptr(120.0) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, pub := newTestService()
			in := validInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Empty(t, repo.items)
			assert.Empty(t, pub.events)
		})
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	repo := newMemRepo()
	svc := NewEmergencyService(repo, &recordingPublisher{err: errors.New("redis down")}, zap.NewNop())
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	names := []string{"Asha", "Ravi", "Meera"}
	for i, name := range names {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		in := validInput()
		in.RequesterName = name
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), models.Filter{Status: "all"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Meera", all[0].RequesterName)
	assert.Equal(t, "Asha", all[2].RequesterName)

	hits, err := svc.List(context.Background(), models.Filter{Query: " rAvI "})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ravi", hits[0].RequesterName)

	byModel, err := svc.List(context.Background(), models.Filter{Query: "nexon"})
	require.NoError(t, err)
	assert.Len(t, byModel, 3)

	none, err := svc.List(context.Background(), models.Filter{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.List(context.Background(), models.Filter{Status: "lost"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _, pub := newTestService()
	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), req.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), req.ID, models.StatusPending)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	updated, err = svc.UpdateStatus(context.Background(), req.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), req.ID, models.StatusCancelled)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.Len(t, pub.events, 3)
	assert.Equal(t, models.EventUpdated, pub.events[2].Type)
	assert.Equal(t, models.StatusCompleted, pub.events[2].Request.Status)
}

func TestUpdateStatusErrors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "missing", models.StatusCancelled)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.UpdateStatus(context.Background(), "missing", "teleported")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), validInput())
		require.NoError(t, err)
	}
	all, err := svc.List(context.Background(), models.Filter{})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), all[0].ID, models.StatusCancelled)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 3, Pending: 2, Cancelled: 1}, stats)
}
