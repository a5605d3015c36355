package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/assist-service/internal/events"
	httpserver "everse/backend/services/assist-service/internal/http"
	"everse/backend/services/assist-service/internal/http/handlers"
	"everse/backend/services/assist-service/internal/models"
	"everse/backend/services/assist-service/internal/repository"
	"everse/backend/services/assist-service/internal/service"
)

type memRepo struct {
	items []models.EmergencyRequest
}

func (m *memRepo) Create(_ context.Context, req *models.EmergencyRequest) error {
	m.items = append(m.items, *req)
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (*models.EmergencyRequest, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			req := m.items[i]
			return &req, nil
		}
	}
	return nil, repository.ErrRequestNotFound
}

func (m *memRepo) List(_ context.Context, f models.Filter) ([]models.EmergencyRequest, error) {
	out := make([]models.EmergencyRequest, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		if f.Status == "" || m.items[i].Status == f.Status {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, from, to string, at time.Time) (*models.EmergencyRequest, error) {
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].Status == from {
			m.items[i].Status = to
			m.items[i].UpdatedAt = at
			req := m.items[i]
			return &req, nil
		}
	}
	return nil, repository.ErrStatusChanged
}

func (m *memRepo) Stats(_ context.Context) (models.Stats, error) {
	var s models.Stats
	for _, r := range m.items {
		s.Add(r.Status, 1)
	}
	return s, nil
}

func newRouter(t *testing.T) (http.Handler, <-chan models.Event) {
	t.Helper()
	broker := events.NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	feed, err := broker.Subscribe(ctx)
	require.NoError(t, err)

	svc := service.NewEmergencyService(&memRepo{}, broker, zap.NewNop())
	h := handlers.NewEmergencyHandlers(svc, zap.NewNop())
	return httpserver.NewRouter(httpserver.Routes{
		ListRequests:  h.List,
		CreateRequest: h.Create,
		Stats:         h.Stats,
		UpdateStatus:  h.UpdateStatus,
		Health:        httpx.HealthHandler(),
	}), feed
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "7")
	h.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"latitude":12.97161,"longitude":77.59463,"carModel":"MG ZS EV","chargerType":"CCS2",
	"requesterName":"Ravi","phone":"9000000000","batteryLevel":4,"priority":"high"}`

func TestEmergencyFlow(t *testing.T) {
	h, feed := newRouter(t)

	rec := do(t, h, http.MethodPost, "/emergency", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.EmergencyRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "12.9716, 77.5946", created.Location)
	assert.Equal(t, int64(7), created.RequesterID)

	evt := <-feed
	assert.Equal(t, models.EventCreated, evt.Type)

	rec = do(t, h, http.MethodPatch, "/emergency/"+created.ID+"/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPatch, "/emergency/"+created.ID+"/status", `{"status":"in-progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.EventUpdated, (<-feed).Type)

	rec = do(t, h, http.MethodGet, "/emergency?status=in-progress", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.EmergencyRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = do(t, h, http.MethodGet, "/emergency/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":1,"pending":0,"inProgress":1,"completed":0,"cancelled":0}`, rec.Body.String())
}

func TestEmergencyErrors(t *testing.T) {
	h, _ := newRouter(t)

	rec := do(t, h, http.MethodPost, "/emergency", `{"latitude":12.9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"all fields are required"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/emergency", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPatch, "/emergency/unknown/status", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/emergency", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

	rec = do(t, h, http.MethodGet, "/emergency?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
