// Package service contains the business logic for the geo-tracking API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/geotracking/internal/domain"
	"github.com/pkordes/geotracking/internal/events"
	"github.com/pkordes/geotracking/internal/metrics"
	"github.com/pkordes/geotracking/internal/repo"
	"github.com/pkordes/geotracking/internal/validate"
)

// EventPublisher receives an event for every successful insert and update.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.RecordEvent) (string, error)
}

// GeoTrackingService implements ingestion, partial update and listing of
// geo-tracking records. It holds the users repo because a record may only
// reference an existing user.
type GeoTrackingService struct {
	records repo.GeoTrackingRepo
	users   repo.UserRepo
	events  EventPublisher
	metrics *metrics.Registry
	log     *slog.Logger
	now     func() time.Time
}

// NewGeoTrackingService constructs a GeoTrackingService backed by the provided
// repos. Pass events.NopPublisher{} when no event stream is configured.
func NewGeoTrackingService(
	records repo.GeoTrackingRepo,
	users repo.UserRepo,
	publisher EventPublisher,
	m *metrics.Registry,
	log *slog.Logger,
) *GeoTrackingService {
	return &GeoTrackingService{
		records: records,
		users:   users,
		events:  publisher,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// Create validates a ping payload, verifies the user exists, converts the
// coordinates to storage precision and persists the record.
// Returns a *domain.ValidationError for invalid input and
// domain.ErrUserNotFound when userId does not reference a user; in both
// cases nothing is written.
func (s *GeoTrackingService) Create(ctx context.Context, p validate.Payload) (domain.Record, error) {
	patch, err := validate.Create(p)
	if err != nil {
		s.metrics.ValidationRejectionsTotal.WithLabelValues("create").Inc()
		return domain.Record{}, err
	}

	userID, _ := patch.UserID.Get()
	if err := s.requireUser(ctx, userID); err != nil {
		return domain.Record{}, fmt.Errorf("service.GeoTrackingService.Create: %w", err)
	}

	result, err := s.records.Create(ctx, newRecord(patch))
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.GeoTrackingService.Create: %w", err)
	}

	s.metrics.RecordsCreatedTotal.Inc()
	s.publish(ctx, events.KindCreated, result)
	return result, nil
}

// GetByID returns a single record.
// Returns domain.ErrNotFound if no record with that id exists.
func (s *GeoTrackingService) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	result, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.GeoTrackingService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the newest domain.ListLimit records matching filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *GeoTrackingService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	records, err := s.records.List(ctx, filter, domain.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("service.GeoTrackingService.List: %w", err)
	}
	if records == nil {
		return []domain.Record{}, nil
	}
	return records, nil
}

// Update validates a partial payload, computes the minimal mutation and
// applies it to record id. Only fields present in the payload change;
// updatedAt always advances.
// Returns a *domain.ValidationError for invalid input, domain.ErrUserNotFound
// when a supplied userId is unknown, and domain.ErrNotFound when the record
// does not exist.
func (s *GeoTrackingService) Update(ctx context.Context, id int64, p validate.Payload) (domain.Record, error) {
	patch, err := validate.Update(id, p)
	if err != nil {
		s.metrics.ValidationRejectionsTotal.WithLabelValues("update").Inc()
		return domain.Record{}, err
	}

	if userID, ok := patch.UserID.Get(); ok {
		if err := s.requireUser(ctx, userID); err != nil {
			return domain.Record{}, fmt.Errorf("service.GeoTrackingService.Update: %w", err)
		}
	}

	result, err := s.records.Update(ctx, id, Merge(patch, s.now().UTC()))
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.GeoTrackingService.Update: %w", err)
	}

	s.metrics.RecordsUpdatedTotal.Inc()
	s.publish(ctx, events.KindUpdated, result)
	return result, nil
}

func (s *GeoTrackingService) requireUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrUserNotFound, id)
	}
	return nil
}

// publish emits a record event. The record is already committed, so a
// failed publish is logged and counted but does not fail the request.
func (s *GeoTrackingService) publish(ctx context.Context, kind events.Kind, rec domain.Record) {
	if _, err := s.events.Publish(ctx, events.NewRecordEvent(kind, rec, s.now().UTC())); err != nil {
		s.metrics.EventPublishFailuresTotal.Inc()
		s.log.WarnContext(ctx, "record event not published",
			"kind", kind,
			"record_id", rec.ID,
			"error", err,
		)
	}
}
