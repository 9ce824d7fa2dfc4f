package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulfurwatch/internal/admin"
	notifierservice "sulfurwatch/internal/notifier/service"
	"sulfurwatch/internal/notifier/store/alert"
	"sulfurwatch/internal/notifier/store/portstate"
	"sulfurwatch/internal/storage"
	vesselservice "sulfurwatch/internal/vessel/service"
	vesselstore "sulfurwatch/internal/vessel/store"
	"sulfurwatch/pkg/testutil"

	dErrors "sulfurwatch/pkg/domain-errors"
)

const sample = `
vessels:
  - vessel_id: IMO1234567
    owner: Acme
    flag_state: PA
  - vessel_id: IMO7654321
    owner: Globex
    flag_state: LR
port_states:
  - location: Baltic Sea
    port_state: EU
`

func newServices() (*vesselservice.Service, *notifierservice.Service, *admin.Gate) {
	coord := storage.NewCoordinator()
	gate := admin.NewGate("harbour-master")
	vessels := vesselservice.New(vesselstore.NewInMemory(coord), gate)
	notifier := notifierservice.New(alert.NewInMemory(coord), portstate.NewInMemory(coord), gate)
	return vessels, notifier, gate
}

func TestSeed(t *testing.T) {
	testutil.Given(t, "a seed document", func(t *testing.T) {
		f, err := Parse(strings.NewReader(sample))
		require.NoError(t, err)
		require.Len(t, f.Vessels, 2)
		require.Len(t, f.PortStates, 1)

		testutil.When(t, "applied as the administrator", func(t *testing.T) {
			vessels, notifier, gate := newServices()
			require.NoError(t, Apply(gate.AsAdmin(context.Background()), f, vessels, notifier, nil))

			testutil.Then(t, "vessels and port states are present", func(t *testing.T) {
				flag, err := vessels.GetFlagState(context.Background(), "IMO7654321")
				require.NoError(t, err)
				assert.Equal(t, "LR", flag)

				label, err := notifier.GetPortState(context.Background(), "Baltic Sea")
				require.NoError(t, err)
				assert.Equal(t, "EU", label)
			})
		})

		testutil.When(t, "applied without the administrator identity", func(t *testing.T) {
			vessels, notifier, _ := newServices()
			err := Apply(testutil.ActorContext("intruder"), f, vessels, notifier, nil)

			testutil.Then(t, "it is rejected as unauthorized", func(t *testing.T) {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
			})
		})
	})

	testutil.Given(t, "an unknown key", func(t *testing.T) {
		_, err := Parse(strings.NewReader("ships: []\n"))
		assert.Error(t, err)
	})

	testutil.Given(t, "an empty document", func(t *testing.T) {
		f, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Vessels)
	})

	testutil.Given(t, "a file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

		f, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme", f.Vessels[0].Owner)

		_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
