package services_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 4, 18, 0, 0, 0, time.UTC)

func testConfig() services.SLAConfig {
	return services.SLAConfig{
		PickupSLA:    24 * time.Hour,
		DeliverySLA:  72 * time.Hour,
		InTransitSLA: 48 * time.Hour,
	}
}

func snapshot(t *testing.T, awb string, status shipment.Status, lastChange time.Time) *shipment.Shipment {
	t.Helper()

	trackingNumber, err := kernel.NewAWB(awb)
	require.NoError(t, err)

	booked := lastChange.Add(-time.Hour)
	sh, err := shipment.RestoreShipment(
		kernel.NewUUID(), trackingNumber, kernel.NewUUID(),
		nil, nil, 0,
		booked.Add(24*time.Hour), booked.Add(96*time.Hour),
		status, lastChange, 1,
	)
	require.NoError(t, err)
	return sh
}

func TestNewSLAInspector(t *testing.T) {
	t.Run("accepts_positive_thresholds", func(t *testing.T) {
		_, err := services.NewSLAInspector(testConfig())

		require.NoError(t, err)
	})

	t.Run("rejects_non_positive_thresholds", func(t *testing.T) {
		config := testConfig()
		config.DeliverySLA = 0

		_, err := services.NewSLAInspector(config)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSLAInspector_StatusPartition(t *testing.T) {
	inspector, err := services.NewSLAInspector(testConfig())
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]shipment.Status{shipment.Pending, shipment.PickupAssigned},
		inspector.StatusesFor(services.ViolationPickup))
	assert.ElementsMatch(t,
		[]shipment.Status{shipment.OutForDelivery},
		inspector.StatusesFor(services.ViolationDelivery))
	assert.ElementsMatch(t,
		[]shipment.Status{shipment.InTransit},
		inspector.StatusesFor(services.ViolationInTransit))

	// Delivery and in-transit must never select the same shipment in one sweep.
	for _, deliveryStatus := range inspector.StatusesFor(services.ViolationDelivery) {
		assert.NotContains(t, inspector.StatusesFor(services.ViolationInTransit), deliveryStatus)
	}
}

func TestSLAInspector_CutoffFor(t *testing.T) {
	inspector, err := services.NewSLAInspector(testConfig())
	require.NoError(t, err)

	assert.Equal(t, now.Add(-24*time.Hour), inspector.CutoffFor(services.ViolationPickup, now))
	assert.Equal(t, now.Add(-72*time.Hour), inspector.CutoffFor(services.ViolationDelivery, now))
	assert.Equal(t, now.Add(-48*time.Hour), inspector.CutoffFor(services.ViolationInTransit, now))
}

func TestSLAInspector_Inspect(t *testing.T) {
	inspector, err := services.NewSLAInspector(testConfig())
	require.NoError(t, err)

	t.Run("detects_delivery_breach", func(t *testing.T) {
		// 80 hours out for delivery against a 72 hour SLA.
		overdue := snapshot(t, "FX20250101000001", shipment.OutForDelivery, now.Add(-80*time.Hour))

		violations, err := inspector.Inspect(services.ViolationDelivery, []*shipment.Shipment{overdue}, now)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, services.ViolationDelivery, violations[0].Type)
		assert.Equal(t, "FX20250101000001", violations[0].AWB.String())
		assert.Equal(t, 72*time.Hour, violations[0].AllowedSLA)
		assert.Equal(t, shipment.OutForDelivery, violations[0].Status)
		assert.Equal(t, now.Add(-80*time.Hour), violations[0].LastUpdate)
	})

	t.Run("skips_shipments_within_sla", func(t *testing.T) {
		fresh := snapshot(t, "FX2", shipment.OutForDelivery, now.Add(-time.Hour))

		violations, err := inspector.Inspect(services.ViolationDelivery, []*shipment.Shipment{fresh}, now)

		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("skips_statuses_outside_stage_range", func(t *testing.T) {
		// An over-broad candidate set must not leak foreign statuses
		// into the violation list.
		stale := snapshot(t, "FX3", shipment.InHub, now.Add(-200*time.Hour))

		violations, err := inspector.Inspect(services.ViolationDelivery, []*shipment.Shipment{stale}, now)

		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("dedupes_by_awb_within_one_inspection", func(t *testing.T) {
		first := snapshot(t, "FX4", shipment.Pending, now.Add(-30*time.Hour))
		second := snapshot(t, "FX4", shipment.PickupAssigned, now.Add(-40*time.Hour))

		violations, err := inspector.Inspect(services.ViolationPickup, []*shipment.Shipment{first, second}, now)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "FX4", violations[0].AWB.String())
	})

	t.Run("boundary_elapsed_exactly_equal_to_sla_is_not_a_breach", func(t *testing.T) {
		boundary := snapshot(t, "FX5", shipment.InTransit, now.Add(-48*time.Hour))

		violations, err := inspector.Inspect(services.ViolationInTransit, []*shipment.Shipment{boundary}, now)

		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("deterministic_for_fixed_inputs", func(t *testing.T) {
		candidates := []*shipment.Shipment{
			snapshot(t, "FX6", shipment.Pending, now.Add(-25*time.Hour)),
			snapshot(t, "FX7", shipment.PickupAssigned, now.Add(-26*time.Hour)),
			snapshot(t, "FX8", shipment.Pending, now.Add(-time.Hour)),
		}

		first, err := inspector.Inspect(services.ViolationPickup, candidates, now)
		require.NoError(t, err)
		second, err := inspector.Inspect(services.ViolationPickup, candidates, now)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		require.Len(t, first, 2)
	})

	t.Run("rejects_unknown_violation_type", func(t *testing.T) {
		_, err := inspector.Inspect(services.ViolationType("misrouted"), nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
