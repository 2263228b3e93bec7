package shipment_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []shipment.Status {
	return []shipment.Status{
		shipment.Pending,
		shipment.PickupAssigned,
		shipment.PickedUp,
		shipment.InHub,
		shipment.InTransit,
		shipment.OutForDelivery,
		shipment.Delivered,
		shipment.FailedDelivery,
		shipment.RTOInitiated,
		shipment.RTOInTransit,
		shipment.RTODelivered,
		shipment.Cancelled,
	}
}

// expectedSuccessors is the reference lifecycle graph. Every (status, next)
// pair outside this table must be rejected by the state machine.
func expectedSuccessors() map[shipment.Status][]shipment.Status {
	return map[shipment.Status][]shipment.Status{
		shipment.Pending:        {shipment.PickupAssigned, shipment.Cancelled},
		shipment.PickupAssigned: {shipment.PickedUp, shipment.Cancelled},
		shipment.PickedUp:       {shipment.InHub},
		shipment.InHub:          {shipment.InTransit, shipment.OutForDelivery},
		shipment.InTransit:      {shipment.InHub},
		shipment.OutForDelivery: {shipment.Delivered, shipment.FailedDelivery},
		shipment.FailedDelivery: {shipment.OutForDelivery, shipment.RTOInitiated},
		shipment.RTOInitiated:   {shipment.RTOInTransit},
		shipment.RTOInTransit:   {shipment.RTODelivered},
		shipment.Delivered:      {},
		shipment.RTODelivered:   {},
		shipment.Cancelled:      {},
	}
}

func TestStatus_TransitionGraph(t *testing.T) {
	expected := expectedSuccessors()

	for _, from := range allStatuses() {
		allowed := make(map[shipment.Status]bool)
		for _, next := range expected[from] {
			allowed[next] = true
		}

		for _, to := range allStatuses() {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[to], got, "edge %s -> %s", from, to)
		}
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("legal_edge_returns_target", func(t *testing.T) {
		next, err := shipment.InHub.TransitionTo(shipment.InTransit)

		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, next)
	})

	t.Run("illegal_edge_identifies_both_statuses", func(t *testing.T) {
		_, err := shipment.Pending.TransitionTo(shipment.Delivered)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		var transitionErr *errs.IllegalTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "pending", transitionErr.From)
		assert.Equal(t, "delivered", transitionErr.To)
	})

	t.Run("terminal_statuses_reject_everything", func(t *testing.T) {
		for _, terminal := range []shipment.Status{shipment.Delivered, shipment.RTODelivered, shipment.Cancelled} {
			for _, to := range allStatuses() {
				_, err := terminal.TransitionTo(to)
				require.ErrorIs(t, err, errs.ErrIllegalTransition, "edge %s -> %s", terminal, to)
			}
		}
	})

	t.Run("unknown_target_is_invalid", func(t *testing.T) {
		_, err := shipment.Pending.TransitionTo(shipment.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[shipment.Status]bool{
		shipment.Delivered:    true,
		shipment.RTODelivered: true,
		shipment.Cancelled:    true,
	}

	for _, status := range allStatuses() {
		assert.Equal(t, terminal[status], status.IsTerminal(), "status %s", status)
	}
	assert.False(t, shipment.Unknown.IsTerminal())
}

func TestStatus_IsRescannable(t *testing.T) {
	rescannable := map[shipment.Status]bool{
		shipment.InHub:          true,
		shipment.OutForDelivery: true,
	}

	for _, status := range allStatuses() {
		assert.Equal(t, rescannable[status], status.IsRescannable(), "status %s", status)
	}
}

func TestStatus_IsConsolidatable(t *testing.T) {
	consolidatable := map[shipment.Status]bool{
		shipment.PickedUp: true,
		shipment.InHub:    true,
	}

	for _, status := range allStatuses() {
		assert.Equal(t, consolidatable[status], status.IsConsolidatable(), "status %s", status)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", shipment.Pending.String())
	assert.Equal(t, "out_for_delivery", shipment.OutForDelivery.String())
	assert.Equal(t, "rto_in_transit", shipment.RTOInTransit.String())
	assert.Equal(t, "unknown", shipment.Unknown.String())
	assert.Equal(t, "unknown", shipment.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trips_every_status", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := shipment.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := shipment.StatusFromString("misrouted")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = shipment.StatusFromString("unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses() {
		require.NoError(t, status.Validate(), "status %s", status)
	}

	require.ErrorIs(t, shipment.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, shipment.Status(42).Validate(), errs.ErrValueIsInvalid)
}
