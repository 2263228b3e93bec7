package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOutboundScanCommandHandler_Handle_HubTransfer(t *testing.T) {
	ctx := t.Context()
	destination := "HUB-BOM"
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001"), mustAWB(t, "AWB-1002")}
	cmd, err := commands.NewOutboundScanCommand("", awbs, "HUB-DEL", &destination, nil, "operator-7")
	require.NoError(t, err)

	first := shipmentInStatus(t, "AWB-1001", shipment.InHub)
	second := shipmentInStatus(t, "AWB-1002", shipment.InHub)

	repo := new(MockShipmentRepository)
	repo.On("GetByAWB", mock.Anything, awbs[0]).Return(first, nil).Once()
	repo.On("GetByAWB", mock.Anything, awbs[1]).Return(second, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Twice()

	uowFirst := new(MockUoW)
	uowSecond := new(MockUoW)
	for _, uow := range []*MockUoW{uowFirst, uowSecond} {
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("ShipmentRepository").Return(repo).Twice()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
	}

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.MatchedBy(func(r ports.AuditRecord) bool {
		return r.Action == "outbound_scan" && r.NewValue == "in_transit"
	})).Return(nil).Twice()

	publisher := new(MockStatusEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.StatusChangedEvent")).
		Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uowFirst).Once()
	factory.On("Create").Return(uowSecond).Once()

	h := commands.NewOutboundScanCommandHandler(factory, sink, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, result.ManifestNumber)
	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		require.True(t, item.Succeeded)
		require.Equal(t, "in_hub", item.PreviousStatus)
		require.Equal(t, "in_transit", item.NewStatus)
	}
	require.Equal(t, shipment.InTransit, first.Status())
	require.Equal(t, "HUB-DEL", *first.CurrentHub())
	repo.AssertExpectations(t)
	sink.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboundScanCommandHandler_Handle_RiderHandover(t *testing.T) {
	ctx := t.Context()
	rider := kernel.NewUUID()
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001")}
	cmd, err := commands.NewOutboundScanCommand("", awbs, "HUB-DEL", nil, &rider, "operator-7")
	require.NoError(t, err)

	tracked := shipmentInStatus(t, "AWB-1001", shipment.InHub)

	repo := new(MockShipmentRepository)
	repo.On("GetByAWB", mock.Anything, awbs[0]).Return(tracked, nil).Once()
	repo.On("Update", mock.Anything, tracked).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.AnythingOfType("ports.AuditRecord")).Return(nil).Once()
	publisher := new(MockStatusEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.StatusChangedEvent")).
		Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(factory, sink, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "out_for_delivery", result.Items[0].NewStatus)
	require.Equal(t, shipment.OutForDelivery, tracked.Status())
	require.True(t, tracked.RiderID().IsEqual(rider))
	require.Nil(t, tracked.CurrentHub())
}

func TestOutboundScanCommandHandler_Handle_PartialFailure(t *testing.T) {
	ctx := t.Context()
	destination := "HUB-BOM"
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001"), mustAWB(t, "AWB-1002")}
	cmd, err := commands.NewOutboundScanCommand("", awbs, "HUB-DEL", &destination, nil, "operator-7")
	require.NoError(t, err)

	healthy := shipmentInStatus(t, "AWB-1002", shipment.InHub)

	repo := new(MockShipmentRepository)
	repo.On("GetByAWB", mock.Anything, awbs[0]).
		Return(nil, errs.NewObjectNotFoundError("awb", "AWB-1001")).Once()
	repo.On("GetByAWB", mock.Anything, awbs[1]).Return(healthy, nil).Once()
	repo.On("Update", mock.Anything, healthy).Return(nil).Once()

	uowFirst := new(MockUoW)
	uowFirst.On("Begin", ctx).Return(nil).Once()
	uowFirst.On("ShipmentRepository").Return(repo).Once()
	uowFirst.On("Rollback", ctx).Return(nil).Once()

	uowSecond := new(MockUoW)
	uowSecond.On("Begin", ctx).Return(nil).Once()
	uowSecond.On("ShipmentRepository").Return(repo).Twice()
	uowSecond.On("Commit", ctx).Return(nil).Once()
	uowSecond.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.AnythingOfType("ports.AuditRecord")).Return(nil).Once()
	publisher := new(MockStatusEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.StatusChangedEvent")).
		Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uowFirst).Once()
	factory.On("Create").Return(uowSecond).Once()

	h := commands.NewOutboundScanCommandHandler(factory, sink, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.False(t, result.Items[0].Succeeded)
	require.NotEmpty(t, result.Items[0].FailureReason)
	require.True(t, result.Items[1].Succeeded)
	uowFirst.AssertNotCalled(t, "Commit", mock.Anything)
	uowFirst.AssertExpectations(t)
	uowSecond.AssertExpectations(t)
}

func TestOutboundScanCommandHandler_Handle_SortDecisionFallback(t *testing.T) {
	ctx := t.Context()
	awb := mustAWB(t, "AWB-1001")
	manifestNumber := "MAN-20250102-090000-AB12CD34"
	cmd, err := commands.NewOutboundScanCommand(
		manifestNumber, nil, "HUB-DEL", nil, nil, "operator-7")
	require.NoError(t, err)

	// Rider handover manifest carries no destination hub; dropping the rider
	// from the scan forces the per-item sort decision fallback.
	dispatched, err := manifest.RestoreManifest(
		kernel.NewUUID(), manifestNumber, "HUB-DEL", nil,
		[]kernel.AWB{awb}, nil, nil, manifest.Created, "",
		time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	decision, err := manifest.NewSortDecision(
		kernel.NewUUID(), awb, "HUB-DEL", "HUB-BOM",
		time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tracked := shipmentInStatus(t, "AWB-1001", shipment.InHub)

	manifestRepo := new(MockManifestRepository)
	manifestRepo.On("GetByNumber", mock.Anything, manifestNumber).Return(dispatched, nil).Once()
	manifestRepo.On("Update", mock.Anything, dispatched).Return(nil).Once()
	manifestRepo.On("LatestSortDecision", mock.Anything, awb).Return(decision, nil).Once()

	repo := new(MockShipmentRepository)
	repo.On("GetByAWB", mock.Anything, awb).Return(tracked, nil).Once()
	repo.On("Update", mock.Anything, tracked).Return(nil).Once()

	uowManifest := new(MockUoW)
	uowManifest.On("Begin", ctx).Return(nil).Once()
	uowManifest.On("ManifestRepository").Return(manifestRepo).Once()
	uowManifest.On("Commit", ctx).Return(nil).Once()
	uowManifest.On("Rollback", ctx).Return(nil).Once()

	uowItem := new(MockUoW)
	uowItem.On("Begin", ctx).Return(nil).Once()
	uowItem.On("ShipmentRepository").Return(repo).Twice()
	uowItem.On("ManifestRepository").Return(manifestRepo).Once()
	uowItem.On("Commit", ctx).Return(nil).Once()
	uowItem.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.MatchedBy(func(r ports.AuditRecord) bool {
		return r.Action == "manifest_dispatched"
	})).Return(nil).Once()
	sink.On("Append", mock.Anything, mock.MatchedBy(func(r ports.AuditRecord) bool {
		return r.Action == "outbound_scan" && r.Context["destinationHub"] == "HUB-BOM"
	})).Return(nil).Once()

	publisher := new(MockStatusEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.StatusChangedEvent")).
		Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uowManifest).Once()
	factory.On("Create").Return(uowItem).Once()

	h := commands.NewOutboundScanCommandHandler(factory, sink, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, manifestNumber, result.ManifestNumber)
	require.Equal(t, manifest.Dispatched, dispatched.Status())
	require.Len(t, result.Items, 1)
	require.True(t, result.Items[0].Succeeded)
	sink.AssertExpectations(t)
	manifestRepo.AssertExpectations(t)
}

func TestOutboundScanCommandHandler_Handle_AlreadyDispatchedManifest(t *testing.T) {
	ctx := t.Context()
	manifestNumber := "MAN-20250102-090000-AB12CD34"
	cmd, err := commands.NewOutboundScanCommand(
		manifestNumber, nil, "HUB-DEL", nil, nil, "operator-7")
	require.NoError(t, err)

	dispatched := manifestInStatus(t,
		[]kernel.AWB{mustAWB(t, "AWB-1001")}, "HUB-BOM", manifest.Dispatched)

	manifestRepo := new(MockManifestRepository)
	manifestRepo.On("GetByNumber", mock.Anything, manifestNumber).Return(dispatched, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(
		factory, new(MockAuditSink), new(MockStatusEventPublisher), discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	var illegal *errs.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestOutboundScanCommandHandler_Handle_RescanSameStatus_WritesNothing(t *testing.T) {
	ctx := t.Context()
	rider := kernel.NewUUID()
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001")}
	cmd, err := commands.NewOutboundScanCommand("", awbs, "HUB-DEL", nil, &rider, "operator-7")
	require.NoError(t, err)

	tracked := shipmentInStatus(t, "AWB-1001", shipment.OutForDelivery)

	repo := new(MockShipmentRepository)
	repo.On("GetByAWB", mock.Anything, awbs[0]).Return(tracked, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	publisher := new(MockStatusEventPublisher)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(factory, sink, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.True(t, result.Items[0].Succeeded)
	require.Equal(t, "out_for_delivery", result.Items[0].PreviousStatus)
	require.Equal(t, "out_for_delivery", result.Items[0].NewStatus)

	// The no-op re-scan leaves no trace: no version bump, no audit record,
	// no status event.
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
