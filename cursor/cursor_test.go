package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/backdrop/cursor"
	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/render/recorder"
)

func TestTargets(t *testing.T) {
	targets := cursor.NewTargets()

	button := targets.Add(cursor.Rect{X: 10, Y: 10, W: 20, H: 10})
	link := targets.Add(cursor.Rect{X: 100, Y: 0, W: 5, H: 5})
	assert.NotEqual(t, button, link)
	assert.Equal(t, 2, targets.Len())

	id, ok := targets.HitTest(15, 15)
	assert.True(t, ok)
	assert.Equal(t, button, id)

	_, ok = targets.HitTest(30, 15)
	assert.False(t, ok, "right edge is exclusive")

	assert.True(t, targets.Set(link, cursor.Rect{X: 0, Y: 0, W: 5, H: 5}))
	id, ok = targets.HitTest(1, 1)
	assert.True(t, ok)
	assert.Equal(t, link, id)

	assert.True(t, targets.Remove(link))
	assert.False(t, targets.Remove(link))
	assert.False(t, targets.Set(link, cursor.Rect{}))
	_, ok = targets.HitTest(1, 1)
	assert.False(t, ok)
}

func TestFollower(t *testing.T) {
	setup := func() (*cursor.Follower, *recorder.Recorder, *frame.Scheduler) {
		cfg := cursor.DefaultConfig()
		follower := cursor.New(cfg)
		rec := recorder.New()
		scheduler := frame.NewScheduler(rec)
		scheduler.Register(follower)
		return follower, rec, scheduler
	}

	t.Run("hidden until the pointer moves", func(t *testing.T) {
		follower, rec, scheduler := setup()

		scheduler.Once(1.0 / 60.0)
		assert.Zero(t, rec.Total())
		assert.False(t, follower.State().Visible)

		follower.Move(50, 60)
		scheduler.Once(1.0 / 60.0)

		rings := rec.Filter(recorder.KindStrokeCircle)
		dots := rec.Filter(recorder.KindFillCircle)
		require.Len(t, rings, 1)
		require.Len(t, dots, 1)
		assert.Equal(t, 50.0, rings[0].X0, "first position snaps")
		assert.Equal(t, 60.0, rings[0].Y0)
		assert.Equal(t, 14.0, rings[0].R)
		assert.Equal(t, 2.0, dots[0].R)
	})

	t.Run("leave and enter", func(t *testing.T) {
		follower, rec, scheduler := setup()

		follower.Enter()
		assert.False(t, follower.State().Visible, "enter without a position stays hidden")

		follower.Move(1, 1)
		follower.Leave()
		scheduler.Once(1.0 / 60.0)
		assert.Zero(t, rec.Total())

		follower.Enter()
		scheduler.Once(1.0 / 60.0)
		assert.Equal(t, 2, rec.Total())
	})

	t.Run("ring eases toward the pointer", func(t *testing.T) {
		follower, rec, scheduler := setup()

		follower.Move(0, 0)
		scheduler.Once(1.0 / 60.0)
		follower.Move(100, 0)
		rec.Reset()
		scheduler.Once(1.0 / 60.0)

		ring := rec.Filter(recorder.KindStrokeCircle)[0]
		dot := rec.Filter(recorder.KindFillCircle)[0]
		assert.Greater(t, ring.X0, 0.0)
		assert.Less(t, ring.X0, 100.0)
		assert.Greater(t, dot.X0, ring.X0, "dot catches up faster than the ring")

		for i := 0; i < 120; i++ {
			scheduler.Once(1.0 / 60.0)
		}
		rec.Reset()
		scheduler.Once(1.0 / 60.0)
		assert.InDelta(t, 100.0, rec.Filter(recorder.KindStrokeCircle)[0].X0, 1e-6)
	})

	t.Run("pressed and hovered scales", func(t *testing.T) {
		follower, rec, scheduler := setup()
		follower.Targets().Add(cursor.Rect{X: 0, Y: 0, W: 40, H: 40})

		follower.Move(10, 10)
		scheduler.Once(0)

		state := follower.State()
		assert.True(t, state.Hovered)
		assert.Equal(t, cursor.HoverScale, state.Scale)

		fills := rec.Filter(recorder.KindFillCircle)
		require.Len(t, fills, 2)
		assert.Equal(t, 28.0, fills[0].R)
		assert.Equal(t, uint8(0x33), fills[0].Color.A)
		assert.Zero(t, rec.Count(recorder.KindStrokeCircle))

		follower.Press()
		rec.Reset()
		scheduler.Once(0)
		assert.Equal(t, cursor.PressedScale, follower.State().Scale)
		assert.Zero(t, rec.Count(recorder.KindStrokeCircle), "a hovered ring stays filled while pressed")
		fills = rec.Filter(recorder.KindFillCircle)
		require.Len(t, fills, 2)
		assert.Equal(t, 7.0, fills[0].R, "zero frame time snaps the scale")
		assert.Equal(t, uint8(0x33), fills[0].Color.A)

		follower.Release()
		follower.Move(100, 100)
		scheduler.Once(0)
		assert.False(t, follower.State().Hovered)
		assert.Equal(t, 1.0, follower.State().Scale)
	})
}
