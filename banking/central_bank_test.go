package banking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveStartsAtZero(t *testing.T) {
	central := NewCentralBank()
	bank := NewBank(central)

	r, err := central.Reserve(bank)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
}

func TestReserveMutationIsUnconditional(t *testing.T) {
	central := NewCentralBank()
	bank := NewBank(central)

	// Removing more than exists is not validated; a negative reserve is
	// a bug signal for the owning bank, not an error here.
	require.NoError(t, central.RemoveReserve(100, bank))

	r, err := central.Reserve(bank)
	require.NoError(t, err)
	assert.Equal(t, -100.0, r)

	require.NoError(t, central.AddReserve(150, bank))
	r, err = central.Reserve(bank)
	require.NoError(t, err)
	assert.Equal(t, 50.0, r)
}

func TestReserveUnknownBank(t *testing.T) {
	central := NewCentralBank()
	other := NewBank(NewCentralBank())

	_, err := central.Reserve(other)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, central.AddReserve(1, other), ErrNotFound)
	assert.ErrorIs(t, central.RemoveReserve(1, other), ErrNotFound)
}

func TestTotalReserve(t *testing.T) {
	central := NewCentralBank()
	b1 := NewBank(central)
	b2 := NewBank(central)

	require.NoError(t, central.AddReserve(100, b1))
	require.NoError(t, central.AddReserve(50, b2))

	assert.Equal(t, 150.0, central.TotalReserve())
}
