package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/geotracking/internal/domain"
	"github.com/pkordes/geotracking/internal/events"
	"github.com/pkordes/geotracking/internal/metrics"
	"github.com/pkordes/geotracking/internal/repo"
	"github.com/pkordes/geotracking/internal/service"
	"github.com/pkordes/geotracking/internal/validate"
)

// mockGeoTrackingRepo is a hand-written test double for repo.GeoTrackingRepo.
// Each method is a function field; set only the ones your test needs.
type mockGeoTrackingRepo struct {
	create  func(ctx context.Context, rec domain.Record) (domain.Record, error)
	getByID func(ctx context.Context, id int64) (domain.Record, error)
	list    func(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Record, error)
	update  func(ctx context.Context, id int64, m domain.Mutation) (domain.Record, error)
}

func (m *mockGeoTrackingRepo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	return m.create(ctx, rec)
}
func (m *mockGeoTrackingRepo) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	return m.getByID(ctx, id)
}
func (m *mockGeoTrackingRepo) List(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Record, error) {
	return m.list(ctx, filter, limit)
}
func (m *mockGeoTrackingRepo) Update(ctx context.Context, id int64, mut domain.Mutation) (domain.Record, error) {
	return m.update(ctx, id, mut)
}

var _ repo.GeoTrackingRepo = (*mockGeoTrackingRepo)(nil)

type mockUserRepo struct {
	exists func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockPublisher struct {
	published []events.RecordEvent
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, ev events.RecordEvent) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.published = append(m.published, ev)
	return "1-0", nil
}

// ---- helpers ---------------------------------------------------------------

func knownUser(ids ...int64) *mockUserRepo {
	return &mockUserRepo{exists: func(_ context.Context, id int64) (bool, error) {
		for _, known := range ids {
			if id == known {
				return true, nil
			}
		}
		return false, nil
	}}
}

func payload(t *testing.T, body string) validate.Payload {
	t.Helper()
	var p validate.Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

type fixture struct {
	svc     *service.GeoTrackingService
	records *mockGeoTrackingRepo
	pub     *mockPublisher
	metrics *metrics.Registry
}

func newFixture(records *mockGeoTrackingRepo, users *mockUserRepo) fixture {
	pub := &mockPublisher{}
	m := metrics.NewRegistry(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fixture{
		svc:     service.NewGeoTrackingService(records, users, pub, m, log),
		records: records,
		pub:     pub,
		metrics: m,
	}
}

// ---- Create ----------------------------------------------------------------

func TestGeoTrackingService_Create_Success(t *testing.T) {
	var stored domain.Record
	records := &mockGeoTrackingRepo{
		create: func(_ context.Context, rec domain.Record) (domain.Record, error) {
			stored = rec
			rec.ID = 11
			return rec, nil
		},
	}
	f := newFixture(records, knownUser(1))

	got, err := f.svc.Create(context.Background(),
		payload(t, `{"userId":1,"latitude":12.123456789,"longitude":77.5,"batt":80}`))

	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, "12.12345679", stored.Latitude.String())
	assert.Equal(t, "77.50000000", stored.Longitude.String())
	require.NotNil(t, stored.Batt)
	assert.Equal(t, 80.0, *stored.Batt)
	assert.True(t, stored.RecordedAt.IsZero(), "absent recordedAt is defaulted by storage")

	require.Len(t, f.pub.published, 1)
	assert.Equal(t, events.KindCreated, f.pub.published[0].Kind)
	assert.Equal(t, int64(11), f.pub.published[0].RecordID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecordsCreatedTotal))
}

func TestGeoTrackingService_Create_ValidationFailureWritesNothing(t *testing.T) {
	records := &mockGeoTrackingRepo{
		create: func(context.Context, domain.Record) (domain.Record, error) {
			t.Fatal("repo must not be called for invalid input")
			return domain.Record{}, nil
		},
	}
	f := newFixture(records, knownUser(1))

	_, err := f.svc.Create(context.Background(), payload(t, `{"latitude":91,"longitude":0}`))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ValidationRejectionsTotal.WithLabelValues("create")))
	assert.Empty(t, f.pub.published)
}

func TestGeoTrackingService_Create_UnknownUser(t *testing.T) {
	records := &mockGeoTrackingRepo{
		create: func(context.Context, domain.Record) (domain.Record, error) {
			t.Fatal("repo must not be called for an unknown user")
			return domain.Record{}, nil
		},
	}
	f := newFixture(records, knownUser(1))

	_, err := f.svc.Create(context.Background(), payload(t, `{"userId":2,"latitude":0,"longitude":0}`))

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeoTrackingService_Create_UserLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	users := &mockUserRepo{exists: func(context.Context, int64) (bool, error) { return false, boom }}
	f := newFixture(&mockGeoTrackingRepo{}, users)

	_, err := f.svc.Create(context.Background(), payload(t, `{"userId":1,"latitude":0,"longitude":0}`))

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGeoTrackingService_Create_PublishFailureDoesNotFail(t *testing.T) {
	records := &mockGeoTrackingRepo{
		create: func(_ context.Context, rec domain.Record) (domain.Record, error) {
			rec.ID = 3
			return rec, nil
		},
	}
	f := newFixture(records, knownUser(1))
	f.pub.err = errors.New("redis down")

	got, err := f.svc.Create(context.Background(), payload(t, `{"userId":1,"latitude":0,"longitude":0}`))

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventPublishFailuresTotal))
}

// ---- GetByID / List --------------------------------------------------------

func TestGeoTrackingService_GetByID_NotFound(t *testing.T) {
	records := &mockGeoTrackingRepo{
		getByID: func(context.Context, int64) (domain.Record, error) { return domain.Record{}, domain.ErrNotFound },
	}
	f := newFixture(records, knownUser())

	_, err := f.svc.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeoTrackingService_List_PassesFilterAndLimit(t *testing.T) {
	userID := int64(4)
	var gotFilter domain.ListFilter
	var gotLimit int
	records := &mockGeoTrackingRepo{
		list: func(_ context.Context, filter domain.ListFilter, limit int) ([]domain.Record, error) {
			gotFilter, gotLimit = filter, limit
			return []domain.Record{{ID: 1}}, nil
		},
	}
	f := newFixture(records, knownUser())

	got, err := f.svc.List(context.Background(), domain.ListFilter{UserID: &userID})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NotNil(t, gotFilter.UserID)
	assert.Equal(t, userID, *gotFilter.UserID)
	assert.Equal(t, domain.ListLimit, gotLimit)
}

func TestGeoTrackingService_List_EmptyIsNonNil(t *testing.T) {
	records := &mockGeoTrackingRepo{
		list: func(context.Context, domain.ListFilter, int) ([]domain.Record, error) { return nil, nil },
	}
	f := newFixture(records, knownUser())

	got, err := f.svc.List(context.Background(), domain.ListFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update ----------------------------------------------------------------

func TestGeoTrackingService_Update_OnlySuppliedFields(t *testing.T) {
	var gotID int64
	var gotMutation domain.Mutation
	records := &mockGeoTrackingRepo{
		update: func(_ context.Context, id int64, m domain.Mutation) (domain.Record, error) {
			gotID, gotMutation = id, m
			return domain.Record{ID: id, UserID: 1}, nil
		},
	}
	f := newFixture(records, knownUser(1))

	before := time.Now().UTC()
	got, err := f.svc.Update(context.Background(), 5, payload(t, `{"batt":42}`))

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, []domain.FieldName{domain.FieldBatt, domain.FieldUpdatedAt}, gotMutation.Fields())
	assert.Equal(t, 42.0, gotMutation[domain.FieldBatt])
	updatedAt, ok := gotMutation[domain.FieldUpdatedAt].(time.Time)
	require.True(t, ok)
	assert.False(t, updatedAt.Before(before))

	require.Len(t, f.pub.published, 1)
	assert.Equal(t, events.KindUpdated, f.pub.published[0].Kind)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecordsUpdatedTotal))
}

func TestGeoTrackingService_Update_NullClearsColumn(t *testing.T) {
	var gotMutation domain.Mutation
	records := &mockGeoTrackingRepo{
		update: func(_ context.Context, id int64, m domain.Mutation) (domain.Record, error) {
			gotMutation = m
			return domain.Record{ID: id}, nil
		},
	}
	f := newFixture(records, knownUser())

	_, err := f.svc.Update(context.Background(), 5, payload(t, `{"checkOutTime":null}`))

	require.NoError(t, err)
	v, ok := gotMutation[domain.FieldCheckOutTime]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestGeoTrackingService_Update_ValidationFailure(t *testing.T) {
	records := &mockGeoTrackingRepo{
		update: func(context.Context, int64, domain.Mutation) (domain.Record, error) {
			t.Fatal("repo must not be called for invalid input")
			return domain.Record{}, nil
		},
	}
	f := newFixture(records, knownUser())

	_, err := f.svc.Update(context.Background(), 5, payload(t, `{"batt":101}`))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ValidationRejectionsTotal.WithLabelValues("update")))
}

func TestGeoTrackingService_Update_UnknownUser(t *testing.T) {
	records := &mockGeoTrackingRepo{
		update: func(context.Context, int64, domain.Mutation) (domain.Record, error) {
			t.Fatal("repo must not be called for an unknown user")
			return domain.Record{}, nil
		},
	}
	f := newFixture(records, knownUser(1))

	_, err := f.svc.Update(context.Background(), 5, payload(t, `{"userId":99}`))

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGeoTrackingService_Update_RecordNotFound(t *testing.T) {
	records := &mockGeoTrackingRepo{
		update: func(context.Context, int64, domain.Mutation) (domain.Record, error) {
			return domain.Record{}, domain.ErrNotFound
		},
	}
	f := newFixture(records, knownUser())

	_, err := f.svc.Update(context.Background(), 5, payload(t, `{"speed":1}`))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.pub.published)
}
