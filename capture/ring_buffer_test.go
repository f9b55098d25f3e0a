package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/networkteam/pagetour/capture"
)

func TestRingBuffer_KeepsOrder(t *testing.T) {
	rb := capture.NewRingBuffer[string](3)

	assert.Equal(t, 0, rb.Len())
	assert.Equal(t, 3, rb.Cap())
	assert.Empty(t, rb.All())

	rb.Add("a")
	rb.Add("b")

	assert.Equal(t, 2, rb.Len())
	assert.Equal(t, []string{"a", "b"}, rb.All())
	assert.Equal(t, []string{"b"}, rb.Last(1))
}

func TestRingBuffer_Overwrite(t *testing.T) {
	rb := capture.NewRingBuffer[int](3)

	for i := 1; i <= 5; i++ {
		rb.Add(i)
	}

	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, []int{3, 4, 5}, rb.All())
	assert.Equal(t, []int{4, 5}, rb.Last(2))
}

func TestRingBuffer_LastBounds(t *testing.T) {
	rb := capture.NewRingBuffer[int](4)
	rb.Add(1)
	rb.Add(2)

	assert.Empty(t, rb.Last(0))
	assert.Empty(t, rb.Last(-1))
	assert.Equal(t, []int{1, 2}, rb.Last(10))
}

func TestRingBuffer_LargeVolume(t *testing.T) {
	rb := capture.NewRingBuffer[int](1000)
	for i := 0; i < 2500; i++ {
		rb.Add(i)
	}

	last := rb.Last(10)
	for i, v := range last {
		assert.Equal(t, 2490+i, v)
	}
}

func TestRingBuffer_ZeroCapacity(t *testing.T) {
	assert.Panics(t, func() {
		capture.NewRingBuffer[string](0)
	})
}
