package activation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activatorCall struct {
	at   time.Duration
	kind string // "focus" or "click"
	id   string
}

// recordingActivator captures calls with their virtual timestamps.
type recordingActivator struct {
	clock     *ManualClock
	calls     []activatorCall
	focusErrs map[string]error
	clickErrs map[string]error
}

func newRecordingActivator(clock *ManualClock) *recordingActivator {
	return &recordingActivator{
		clock:     clock,
		focusErrs: make(map[string]error),
		clickErrs: make(map[string]error),
	}
}

func (r *recordingActivator) Focus(_ context.Context, id string) error {
	r.calls = append(r.calls, activatorCall{at: r.clock.Now(), kind: "focus", id: id})
	return r.focusErrs[id]
}

func (r *recordingActivator) Click(_ context.Context, id string) error {
	r.calls = append(r.calls, activatorCall{at: r.clock.Now(), kind: "click", id: id})
	return r.clickErrs[id]
}

func (r *recordingActivator) clicked() []string {
	var ids []string
	for _, c := range r.calls {
		if c.kind == "click" {
			ids = append(ids, c.id)
		}
	}
	return ids
}

func (r *recordingActivator) clickAt(id string) (time.Duration, bool) {
	for _, c := range r.calls {
		if c.kind == "click" && c.id == id {
			return c.at, true
		}
	}
	return 0, false
}

func TestSequencer_StaggersActivations(t *testing.T) {
	ctx := context.Background()
	clock := NewManualClock()
	act := newRecordingActivator(clock)
	seq := NewSequencer(ctx, act, clock, 100*time.Millisecond)

	seq.Activate(ctx, []string{"a", "b", "c"})
	require.Equal(t, 3, clock.Pending())

	// The first element fires at batch start.
	clock.Advance(0)
	assert.Equal(t, []string{"a"}, act.clicked())

	// Just before the next slot nothing new fires.
	clock.Advance(99 * time.Millisecond)
	assert.Equal(t, []string{"a"}, act.clicked())

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, act.clicked())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, act.clicked())
	assert.Equal(t, 0, clock.Pending())
}

func TestSequencer_ActivationTimesAreIndexTimesStagger(t *testing.T) {
	ctx := context.Background()
	clock := NewManualClock()
	act := newRecordingActivator(clock)
	seq := NewSequencer(ctx, act, clock, 100*time.Millisecond)

	ids := []string{"first", "second", "third", "fourth"}
	seq.Activate(ctx, ids)
	clock.Advance(time.Second)

	for i, id := range ids {
		at, ok := act.clickAt(id)
		require.True(t, ok, "element %s never activated", id)
		assert.Equal(t, time.Duration(i)*100*time.Millisecond, at)
	}
}

func TestSequencer_FocusPrecedesClick(t *testing.T) {
	ctx := context.Background()
	clock := NewManualClock()
	act := newRecordingActivator(clock)
	seq := NewSequencer(ctx, act, clock, 50*time.Millisecond)

	seq.Activate(ctx, []string{"a"})
	clock.Advance(0)

	require.Len(t, act.calls, 2)
	assert.Equal(t, "focus", act.calls[0].kind)
	assert.Equal(t, "click", act.calls[1].kind)
}

func TestSequencer_FailureDoesNotBlockLaterElements(t *testing.T) {
	ctx := context.Background()
	clock := NewManualClock()
	act := newRecordingActivator(clock)
	act.clickErrs["b"] = errors.New("element went away")
	act.focusErrs["a"] = errors.New("not focusable")
	seq := NewSequencer(ctx, act, clock, 100*time.Millisecond)

	seq.Activate(ctx, []string{"a", "b", "c"})
	clock.Advance(time.Second)

	// A failed focus still clicks; a failed click still lets the rest of
	// the batch run.
	assert.Equal(t, []string{"a", "b", "c"}, act.clicked())
}

func TestSequencer_EmptyBatchSchedulesNothing(t *testing.T) {
	ctx := context.Background()
	clock := NewManualClock()
	act := newRecordingActivator(clock)
	seq := NewSequencer(ctx, act, clock, 100*time.Millisecond)

	seq.Activate(ctx, nil)
	assert.Equal(t, 0, clock.Pending())
}

func TestManualClock_TiesFireInSchedulingOrder(t *testing.T) {
	clock := NewManualClock()
	var order []string
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })
	clock.AfterFunc(5*time.Millisecond, func() { order = append(order, "c") })

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestManualClock_NestedSchedulingWithinWindow(t *testing.T) {
	clock := NewManualClock()
	var order []string
	clock.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "outer")
		clock.AfterFunc(5*time.Millisecond, func() { order = append(order, "inner") })
	})

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, 0, clock.Pending())
}
