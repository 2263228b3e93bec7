package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSortShipmentsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001"), mustAWB(t, "AWB-1002")}
	cmd, err := commands.NewSortShipmentsCommand(awbs, "HUB-DEL", "HUB-BOM", "operator-7")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByAWB", mock.Anything, awbs[0]).
		Return(shipmentInStatus(t, "AWB-1001", shipment.InHub), nil).Once()
	shipmentRepo.On("GetByAWB", mock.Anything, awbs[1]).
		Return(shipmentInStatus(t, "AWB-1002", shipment.InHub), nil).Once()

	manifestRepo := new(MockManifestRepository)
	manifestRepo.On("AddSortDecision", mock.Anything, mock.AnythingOfType("*manifest.SortDecision")).
		Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("ManifestRepository").Return(manifestRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.MatchedBy(func(r ports.AuditRecord) bool {
		return r.Action == "sort_decision_recorded" && r.Context["destinationHub"] == "HUB-BOM"
	})).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSortShipmentsCommandHandler(factory, sink)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		require.True(t, item.Succeeded)
		// Sorting is advisory: no status change on either side.
		require.Equal(t, item.PreviousStatus, item.NewStatus)
	}
	shipmentRepo.AssertExpectations(t)
	manifestRepo.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestSortShipmentsCommandHandler_Handle_UnknownAWBFailsAlone(t *testing.T) {
	ctx := t.Context()
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001"), mustAWB(t, "AWB-1002")}
	cmd, err := commands.NewSortShipmentsCommand(awbs, "HUB-DEL", "HUB-BOM", "operator-7")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByAWB", mock.Anything, awbs[0]).
		Return(nil, errs.NewObjectNotFoundError("awb", "AWB-1001")).Once()
	shipmentRepo.On("GetByAWB", mock.Anything, awbs[1]).
		Return(shipmentInStatus(t, "AWB-1002", shipment.InHub), nil).Once()

	manifestRepo := new(MockManifestRepository)
	manifestRepo.On("AddSortDecision", mock.Anything, mock.AnythingOfType("*manifest.SortDecision")).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("ManifestRepository").Return(manifestRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	sink := new(MockAuditSink)
	sink.On("Append", mock.Anything, mock.AnythingOfType("ports.AuditRecord")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSortShipmentsCommandHandler(factory, sink)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.False(t, result.Items[0].Succeeded)
	require.True(t, result.Items[1].Succeeded)
	manifestRepo.AssertExpectations(t)
}
