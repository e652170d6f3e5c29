package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

func TestClockAccumulates(t *testing.T) {
	c := NewClock(4, 0.1, 5)
	assert.Equal(t, 0.25, c.Step())

	assert.Zero(t, c.Advance(0.1))
	assert.Zero(t, c.Advance(0.1))
	assert.Equal(t, 1, c.Advance(0.1))
	assert.Zero(t, c.Advance(0.1), "0.05 carried over")
	assert.Zero(t, c.Advance(0.09))
	assert.Equal(t, 1, c.Advance(0.01))

	c.Reset()
	assert.Zero(t, c.Advance(0.2))
}

func TestClockClampsFrameTime(t *testing.T) {
	c := NewClock(20, 0.1, 5)
	assert.Equal(t, 2, c.Advance(10), "a long stall counts as MaxDT")
	assert.Zero(t, c.Advance(-1))
}

func TestClockCapsSteps(t *testing.T) {
	c := NewClock(100, 0.1, 3)
	assert.Equal(t, 3, c.Advance(0.1))
	assert.Zero(t, c.Advance(0.005), "excess time is dropped")
}

func TestClockDefaults(t *testing.T) {
	c := NewClock(0, 0.1, 0)
	assert.InDelta(t, 1.0/60, c.Step(), 1e-12)
}

func TestPowersTick(t *testing.T) {
	var p Powers
	p.Activate(entity.PowerShield, 1)
	p.Activate(entity.PowerSpeed, 0.5)

	assert.Empty(t, p.Tick(0.25))
	assert.True(t, p.Active(entity.PowerShield))

	assert.Equal(t, []entity.PowerKind{entity.PowerSpeed}, p.Tick(0.25))
	assert.False(t, p.Active(entity.PowerSpeed))
	assert.Equal(t, 0.5, p.Remaining(entity.PowerShield))

	// Re-collecting refreshes rather than stacks.
	p.Activate(entity.PowerShield, 1)
	assert.Equal(t, 1.0, p.Remaining(entity.PowerShield))
	assert.Nil(t, p.Tick(0.5))
	assert.Equal(t, []entity.PowerKind{entity.PowerShield}, p.Tick(0.5))
	assert.Nil(t, p.Tick(0.5), "expired powers are reported once")
}
