package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/econsim/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Simulation.Ticks = 12
	cfg.Simulation.Corporations = 3
	cfg.Simulation.People = 30
	cfg.Simulation.Banks = 2
	cfg.Simulation.Seed = 42
	cfg.Corporation.Demand = 15
	cfg.Corporation.Balance = 5000
	return cfg
}

func TestNewInitializesEconomy(t *testing.T) {
	s, err := New(testConfig(), nil, nil)
	require.NoError(t, err)

	assert.Len(t, s.Banks(), 2)
	assert.Len(t, s.Corporations(), 3)
	assert.Len(t, s.People(), 30)

	// Seed balances land in the ledgers and the reserve mirrors them.
	assert.InDelta(t, 3*5000.0, s.CentralBank().TotalReserve(), 1e-9)
}

func TestInitialStaffingCoversSeedDemand(t *testing.T) {
	s, err := New(testConfig(), nil, nil)
	require.NoError(t, err)

	// Seed demand 15 at PPE 5 takes 3 employees per corporation.
	employed := 0
	for _, p := range s.People() {
		if p.Employed {
			employed++
		}
	}
	assert.Equal(t, 9, employed)

	for _, c := range s.Corporations() {
		assert.Equal(t, 3, c.Employees(), "%s understaffed", c.Name)
		assert.False(t, c.Hiring)
	}
}

func TestRunHoldsConservation(t *testing.T) {
	s, err := New(testConfig(), nil, nil)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		require.NoError(t, s.Tick())
		// Reserve equals net deposits minus withdraws at every
		// observation point, loans or no loans.
		assert.InDelta(t, 0.0, s.ConservationGap(), 1e-6, "tick %d", s.CurrentTick())
	}
}

func TestRunRecordsStats(t *testing.T) {
	s, err := New(testConfig(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	assert.Equal(t, 12, s.CurrentTick())
	for tick := 1; tick <= 12; tick++ {
		_, ok := s.Stats().TotalReserve.Value(tick)
		assert.True(t, ok, "missing stats for tick %d", tick)
	}

	// Seeded demand forces production at the first tick.
	produced, _ := s.Stats().GoodsProduced.Value(1)
	assert.Greater(t, produced, 0.0)
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() float64 {
		s, err := New(testConfig(), nil, nil)
		require.NoError(t, err)
		require.NoError(t, s.Run())
		v, _ := s.Stats().PersonBalances.Value(s.CurrentTick())
		return v
	}

	assert.Equal(t, run(), run())
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.Banks = 0

	_, err := New(cfg, nil, nil)
	assert.Error(t, err)
}
