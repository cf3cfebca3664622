package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickSizeFactor(t *testing.T) {
	assert.Equal(t, 100.0, TickSizeFactor(0.05))
	assert.Equal(t, 100.0, TickSizeFactor(0.25))
	assert.Equal(t, 10.0, TickSizeFactor(0.5))
	assert.Equal(t, 10000.0, TickSizeFactor(0.0001))
	assert.Equal(t, 1.0, TickSizeFactor(1))
	assert.Equal(t, 1.0, TickSizeFactor(25))
}

func TestIsTickAligned(t *testing.T) {
	t.Run("fractional tick", func(t *testing.T) {
		assert.False(t, IsTickAligned(10.03, 0.05))
		assert.True(t, IsTickAligned(10.05, 0.05))
		assert.True(t, IsTickAligned(10.1, 0.05))
	})

	t.Run("values that break float modulo", func(t *testing.T) {
		assert.True(t, IsTickAligned(0.3, 0.1))
		assert.True(t, IsTickAligned(1.15, 0.05))
		assert.True(t, IsTickAligned(4.35, 0.01))
	})

	t.Run("whole tick", func(t *testing.T) {
		assert.True(t, IsTickAligned(150, 5))
		assert.False(t, IsTickAligned(152, 5))
	})

	t.Run("zero tick", func(t *testing.T) {
		assert.False(t, IsTickAligned(10, 0))
	})
}
