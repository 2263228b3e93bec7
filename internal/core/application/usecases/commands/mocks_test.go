package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByAWB(ctx context.Context, awb kernel.AWB) (*shipment.Shipment, error) {
	args := m.Called(ctx, awb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByStatusOlderThan(
	ctx context.Context,
	statuses []shipment.Status,
	cutoff time.Time,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, statuses, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockManifestRepository struct{ mock.Mock }

func (m *MockManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) GetByNumber(ctx context.Context, number string) (*manifest.Manifest, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) AddSortDecision(ctx context.Context, decision *manifest.SortDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *MockManifestRepository) LatestSortDecision(ctx context.Context, awb kernel.AWB) (*manifest.SortDecision, error) {
	args := m.Called(ctx, awb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.SortDecision), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) ManifestRepository() ports.ManifestRepository {
	args := m.Called()
	return args.Get(0).(ports.ManifestRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAuditSink struct{ mock.Mock }

func (m *MockAuditSink) Append(ctx context.Context, record ports.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockViolationQueue struct{ mock.Mock }

func (m *MockViolationQueue) Enqueue(ctx context.Context, job ports.ViolationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockStatusEventPublisher struct{ mock.Mock }

func (m *MockStatusEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustAWB(t *testing.T, value string) kernel.AWB {
	t.Helper()
	awb, err := kernel.NewAWB(value)
	require.NoError(t, err)
	return awb
}

func shipmentInStatus(t *testing.T, awb string, status shipment.Status) *shipment.Shipment {
	t.Helper()
	lastChange := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	restored, err := shipment.RestoreShipment(
		kernel.NewUUID(),
		mustAWB(t, awb),
		kernel.NewUUID(),
		nil,
		nil,
		15000,
		time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 5, 18, 0, 0, 0, time.UTC),
		status,
		lastChange,
		1,
	)
	require.NoError(t, err)
	return restored
}

func manifestInStatus(
	t *testing.T,
	expected []kernel.AWB,
	destinationHub string,
	status manifest.Status,
) *manifest.Manifest {
	t.Helper()
	restored, err := manifest.RestoreManifest(
		kernel.NewUUID(),
		"MAN-20250102-090000-AB12CD34",
		"HUB-DEL",
		&destinationHub,
		expected,
		nil,
		nil,
		status,
		"",
		time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
		nil,
	)
	require.NoError(t, err)
	return restored
}
