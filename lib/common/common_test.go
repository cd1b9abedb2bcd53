package common

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestClampParallelism(t *testing.T) {
	assert.Equal(t, 1, ClampParallelism(0))
	assert.Equal(t, 1, ClampParallelism(-3))
	assert.Equal(t, 1, ClampParallelism(1))
	assert.Equal(t, MaxParallelism, ClampParallelism(MaxParallelism+10))
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00 to 1970-01-01T00:01:00", FormatDateRange(0, 60_000))
}

func TestCancellerKeepsFirstError(t *testing.T) {
	c := NewCanceller()
	assert.False(t, c.Cancelled())

	first := errors.New("first")
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.CancelWithError(first)
	}()
	wg.Wait()
	c.CancelWithError(errors.New("second"))
	c.Cancel()

	<-c.C()
	assert.True(t, c.Cancelled())
	assert.Equal(t, first, c.Err())
}
