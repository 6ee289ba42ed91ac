package mainloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescerMergesBurstIntoSingleDispatch(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("policy-reload", func() { value = v })
	}

	require.Len(t, queue, 1)
	queue[0]()
	assert.Equal(t, 5, value, "latest post wins")
}

func TestCoalescerKeysScheduleIndependently(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := map[string]bool{}
	c.Post("policy-reload", func() { ran["policy"] = true })
	c.Post("title-update", func() { ran["title"] = true })

	require.Len(t, queue, 2)
	for _, fn := range queue {
		fn()
	}
	assert.True(t, ran["policy"])
	assert.True(t, ran["title"])
}

func TestCoalescerDropsWorkAfterClose(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("policy-reload", func() { ran = true })
	c.Close()

	require.Len(t, queue, 1)
	queue[0]()
	assert.False(t, ran, "queued work is dropped after Close")

	c.Post("policy-reload", func() { ran = true })
	assert.Len(t, queue, 1, "posts after Close are rejected")
}

func TestCoalescerIgnoresEmptyKeyAndNilFunc(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	c.Post("", func() {})
	c.Post("policy-reload", nil)

	assert.Empty(t, queue)
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() { _ = NewCoalescer(nil) })
}
