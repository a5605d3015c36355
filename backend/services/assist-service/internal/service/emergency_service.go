package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"everse/backend/libs/geo"
	"everse/backend/services/assist-service/internal/models"
	"everse/backend/services/assist-service/internal/repository"
)

// Repository is the storage contract for emergency requests.
type Repository interface {
	Create(ctx context.Context, req *models.EmergencyRequest) error
	Get(ctx context.Context, id string) (*models.EmergencyRequest, error)
	List(ctx context.Context, filter models.Filter) ([]models.EmergencyRequest, error)
	UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (*models.EmergencyRequest, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Publisher pushes events to live responders.
type Publisher interface {
	Publish(ctx context.Context, evt models.Event) error
}

// CreateInput is a new assistance request. Pointers distinguish missing from zero.
type CreateInput struct {
	Latitude      *float64
	Longitude     *float64
	CarModel      string
	ChargerType   string
	RequesterName string
	Phone         string
	BatteryLevel  *int
	Priority      string
	RequesterID   int64
}

// EmergencyService manages assistance requests.
type EmergencyService struct {
	repo      Repository
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewEmergencyService builds service.
func NewEmergencyService(repo Repository, publisher Publisher, logger *zap.Logger) *EmergencyService {
	return &EmergencyService{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

// Create validates and stores a pending request, then notifies responders.
func (s *EmergencyService) Create(ctx context.Context, in CreateInput) (*models.EmergencyRequest, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	req := &models.EmergencyRequest{
		ID:            uuid.NewString(),
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		Location:      fmt.Sprintf("%.4f, %.4f", *in.Latitude, *in.Longitude),
		CarModel:      in.CarModel,
		ChargerType:   in.ChargerType,
		RequesterName: in.RequesterName,
		Phone:         in.Phone,
		BatteryLevel:  *in.BatteryLevel,
		Priority:      in.Priority,
		Status:        models.StatusPending,
		RequesterID:   in.RequesterID,
		Timestamp:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventCreated, req)
	return req, nil
}

// List returns requests newest first.
func (s *EmergencyService) List(ctx context.Context, filter models.Filter) ([]models.EmergencyRequest, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, invalid("unknown status filter")
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

// Stats counts requests per status.
func (s *EmergencyService) Stats(ctx context.Context) (models.Stats, error) {
	return s.repo.Stats(ctx)
}

// UpdateStatus applies a lifecycle transition.
func (s *EmergencyService) UpdateStatus(ctx context.Context, id, status string) (*models.EmergencyRequest, error) {
	status = strings.TrimSpace(status)
	if !models.ValidStatus(status) {
		return nil, invalid("unknown status")
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !models.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, status, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: request changed concurrently", ErrInvalidTransition)
		}
		return nil, err
	}

	s.publish(ctx, models.EventUpdated, updated)
	return updated, nil
}

func (s *EmergencyService) publish(ctx context.Context, kind string, req *models.EmergencyRequest) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, models.Event{Type: kind, Request: *req}); err != nil {
		s.logger.Warn("failed to publish emergency event",
			zap.String("type", kind),
			zap.String("request_id", req.ID),
			zap.Error(err),
		)
	}
}

func validateCreate(in *CreateInput) error {
	in.CarModel = strings.TrimSpace(in.CarModel)
	in.ChargerType = strings.TrimSpace(in.ChargerType)
	in.RequesterName = strings.TrimSpace(in.RequesterName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))

	if in.Latitude == nil || in.Longitude == nil || in.BatteryLevel == nil ||
		in.CarModel == "" || in.ChargerType == "" || in.RequesterName == "" || in.Phone == "" || in.Priority == "" {
		return invalid("all fields are required")
	}
	if !geo.ValidLatLng(*in.Latitude, *in.Longitude) {
		return invalid("latitude/longitude out of range")
	}
	if *in.BatteryLevel < 0 || *in.BatteryLevel > 100 {
		return invalid("batteryLevel must be between 0 and 100")
	}
	if !models.ValidPriority(in.Priority) {
		return invalid("priority must be high, medium or low")
	}
	return nil
}
