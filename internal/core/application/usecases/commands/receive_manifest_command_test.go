package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceiveManifestCommand(t *testing.T) {
	received := []kernel.AWB{mustAWB(t, "AWB-1001")}

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewReceiveManifestCommand(
			kernel.NewUUID(), received, "HUB-BOM", "operator-7")
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Len(t, cmd.ReceivedAWBs(), 1)
	})

	t.Run("empty scan list is legal", func(t *testing.T) {
		_, err := commands.NewReceiveManifestCommand(kernel.NewUUID(), nil, "HUB-BOM", "operator-7")
		require.NoError(t, err)
	})

	t.Run("empty manifest id", func(t *testing.T) {
		_, err := commands.NewReceiveManifestCommand(kernel.UUID{}, received, "HUB-BOM", "operator-7")
		require.Error(t, err)
	})

	t.Run("empty hub location", func(t *testing.T) {
		_, err := commands.NewReceiveManifestCommand(kernel.NewUUID(), received, "", "operator-7")
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.ReceiveManifestCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrReceiveManifestCommandIsNotConstructed)
	})
}
