package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCooldown(t *testing.T) {
	cd := NewCooldown(100)
	assert.True(t, cd.Ready())
	assert.True(t, cd.Consume())
	assert.False(t, cd.Consume())
	cd.Tick(99)
	assert.False(t, cd.Ready())
	cd.Tick(5)
	assert.True(t, cd.Ready())
	assert.Equal(t, 0.0, cd.RemainingMs)

	none := NewCooldown(-20)
	assert.True(t, none.Consume())
	assert.True(t, none.Consume(), "non-positive duration never blocks")
}

func TestChargePool(t *testing.T) {
	p := NewChargePool(3, 100)
	assert.Equal(t, 3, p.Count())
	for i := 0; i < 3; i++ {
		assert.True(t, p.TryUse())
	}
	assert.False(t, p.TryUse())

	p.Tick(250)
	assert.Equal(t, 2, p.Count())
	p.Tick(50)
	assert.Equal(t, 3, p.Count())
	p.Tick(1000)
	assert.Equal(t, 3, p.Count(), "never exceeds max")

	p.TryUse()
	p.Tick(60)
	p.TryUse() // restarts the regen clock
	p.Tick(60)
	assert.Equal(t, 1, p.Count())

	p.Refill()
	assert.Equal(t, 3, p.Count())

	noRegen := NewChargePool(1, 0)
	noRegen.TryUse()
	noRegen.Tick(10_000)
	assert.Equal(t, 0, noRegen.Count())
}
