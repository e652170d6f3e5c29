package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player() Actor {
	return Actor{Kind: KindPlayer, W: 32, H: 40, Health: 3, MaxHealth: 3}
}

func coin(x float64) Actor {
	return Actor{Kind: KindCoin, Caps: Collectible, X: x, W: 24, H: 24}
}

func TestNewRegistryRequiresPlayer(t *testing.T) {
	_, err := NewRegistry(coin(0))
	require.ErrorIs(t, err, ErrInvalidSpawn)

	_, err = NewRegistry(Actor{Kind: KindPlayer})
	require.ErrorIs(t, err, ErrInvalidSpawn)

	r, err := NewRegistry(player())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, KindPlayer, r.Player().Kind)
}

func TestAddRejectsInvalid(t *testing.T) {
	r, err := NewRegistry(player())
	require.NoError(t, err)

	_, err = r.Add(Actor{Kind: KindCoin, W: 0, H: 10})
	assert.ErrorIs(t, err, ErrInvalidSpawn)
	_, err = r.Add(player())
	assert.ErrorIs(t, err, ErrInvalidSpawn)
}

func TestDeferredRemoval(t *testing.T) {
	r, err := NewRegistry(player())
	require.NoError(t, err)

	a, err := r.Add(coin(0))
	require.NoError(t, err)
	b, err := r.Add(coin(50))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	assert.True(t, r.MarkRemoved(a))
	assert.True(t, r.MarkRemoved(a), "second mark is idempotent")
	assert.Equal(t, 1, r.Pending())

	// Still visible until flush.
	_, ok := r.Get(a)
	assert.True(t, ok)
	assert.True(t, r.IsPending(a))

	assert.Equal(t, 1, r.Flush())
	assert.Equal(t, 2, r.Len())
	_, ok = r.Get(a)
	assert.False(t, ok, "flushed handle must not resolve")
	_, ok = r.Get(b)
	assert.True(t, ok)
}

func TestSlotReuseInvalidatesOldHandle(t *testing.T) {
	r, err := NewRegistry(player())
	require.NoError(t, err)

	old, err := r.Add(coin(0))
	require.NoError(t, err)
	r.MarkRemoved(old)
	r.Flush()

	fresh, err := r.Add(coin(10))
	require.NoError(t, err)
	assert.Equal(t, old.Index, fresh.Index)
	assert.NotEqual(t, old.Gen, fresh.Gen)

	_, ok := r.Get(old)
	assert.False(t, ok)
	assert.Panics(t, func() { r.MustGet(old) })
	assert.Equal(t, 10.0, r.MustGet(fresh).X)
}

func TestPlayerCannotBeRemoved(t *testing.T) {
	r, err := NewRegistry(player())
	require.NoError(t, err)

	assert.False(t, r.MarkRemoved(PlayerID))
	assert.Equal(t, 0, r.Flush())
	assert.Equal(t, 1, r.Len())
}

func TestEachSlotOrder(t *testing.T) {
	r, err := NewRegistry(player())
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := r.Add(coin(float64(i)))
		require.NoError(t, err)
	}

	var xs []float64
	r.Each(func(_ ID, a *Actor) bool {
		xs = append(xs, a.X)
		return len(xs) < 3
	})
	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Equal(t, 4, r.Count(KindCoin))
}

func TestCapabilityHas(t *testing.T) {
	c := Damaging | Stompable
	assert.True(t, c.Has(Damaging))
	assert.True(t, c.Has(Damaging|Stompable))
	assert.False(t, c.Has(Collectible))
	assert.True(t, KindSpinner.IsEnemy())
	assert.False(t, KindSpike.IsEnemy())
}
