package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"inverted_range", 3, 4, 2, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Clamp(c.v, c.lo, c.hi))
		})
	}
}

func TestEaseOut(t *testing.T) {
	assert.Equal(t, 0.0, EaseOut(0))
	assert.Equal(t, 1.0, EaseOut(1))
	assert.Equal(t, 0.75, EaseOut(0.5))
	assert.Equal(t, 1.0, EaseOut(2))
}
