package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	start := time.UnixMilli(1000)
	c := NewManual(start)
	assert.Equal(t, start, c.Now())

	c.Advance(499 * time.Millisecond)
	assert.Equal(t, time.UnixMilli(1499), c.Now())

	c.Set(time.UnixMilli(5000))
	assert.Equal(t, time.UnixMilli(5000), c.Now())
}

func TestSystemMovesForward(t *testing.T) {
	var c Clock = System{}
	a := c.Now()
	b := c.Now()
	assert.False(t, b.Before(a))
}
