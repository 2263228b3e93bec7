package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateManifestCommand(t *testing.T) {
	destination := "HUB-BOM"
	awbs := []kernel.AWB{mustAWB(t, "AWB-1001"), mustAWB(t, "AWB-1002")}

	t.Run("hub-to-hub manifest", func(t *testing.T) {
		cmd, err := commands.NewCreateManifestCommand(
			"HUB-DEL", &destination, nil, awbs, "line-haul", "operator-7")
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "HUB-DEL", cmd.OriginHub())
		assert.Equal(t, destination, *cmd.DestinationHub())
		assert.Nil(t, cmd.RiderID())
		assert.Len(t, cmd.AWBs(), 2)
	})

	t.Run("rider handover manifest", func(t *testing.T) {
		rider := kernel.NewUUID()
		cmd, err := commands.NewCreateManifestCommand(
			"HUB-DEL", nil, &rider, awbs, "", "operator-7")
		require.NoError(t, err)
		assert.Nil(t, cmd.DestinationHub())
		assert.True(t, cmd.RiderID().IsEqual(rider))
	})

	t.Run("neither destination nor rider", func(t *testing.T) {
		_, err := commands.NewCreateManifestCommand("HUB-DEL", nil, nil, awbs, "", "operator-7")
		require.Error(t, err)
	})

	t.Run("empty AWB list", func(t *testing.T) {
		_, err := commands.NewCreateManifestCommand(
			"HUB-DEL", &destination, nil, nil, "", "operator-7")
		require.Error(t, err)
	})

	t.Run("empty origin hub", func(t *testing.T) {
		_, err := commands.NewCreateManifestCommand("", &destination, nil, awbs, "", "operator-7")
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateManifestCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateManifestCommandIsNotConstructed)
	})
}
