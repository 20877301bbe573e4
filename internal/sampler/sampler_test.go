package sampler

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"colorose/internal/app"
	"colorose/internal/config"
	"colorose/internal/logging"
	"colorose/internal/platform"
	"colorose/pkg/colorutil"
	"colorose/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHD = geometry.RectInt{X: 0, Y: 0, Width: 1920, Height: 1080}

type captureCall struct {
	origin geometry.PointInt
	size   int
}

// fakePlatform returns scripted cursor positions and solid-color grids.
type fakePlatform struct {
	positions []geometry.PointInt
	next      int

	cursorErr  error
	captureErr error
	displayErr error
	display    geometry.RectInt
	fill       colorutil.Color

	captures []captureCall
	moves    []geometry.PointInt
}

func (f *fakePlatform) CursorPosition() (geometry.PointInt, error) {
	if f.cursorErr != nil {
		return geometry.PointInt{}, f.cursorErr
	}
	i := f.next
	if i >= len(f.positions) {
		i = len(f.positions) - 1
	}
	f.next++
	return f.positions[i], nil
}

func (f *fakePlatform) DisplayAt(geometry.PointInt) (geometry.RectInt, error) {
	if f.displayErr != nil {
		return geometry.RectInt{}, f.displayErr
	}
	return f.display, nil
}

func (f *fakePlatform) CaptureRegion(origin geometry.PointInt, width, height int) (colorutil.PixelGrid, error) {
	if f.captureErr != nil {
		return colorutil.PixelGrid{}, f.captureErr
	}
	f.captures = append(f.captures, captureCall{origin: origin, size: width})
	grid := colorutil.NewPixelGrid(width)
	for i := range grid.Pixels {
		grid.Pixels[i] = f.fill
	}
	return grid, nil
}

func (f *fakePlatform) SetWindowPosition(p geometry.PointInt) {
	f.moves = append(f.moves, p)
}

func (f *fakePlatform) setPositions(ps ...geometry.PointInt) {
	f.positions = ps
	f.next = 0
}

func newDocked(f *fakePlatform) (*Sampler, *app.State) {
	state := app.NewState(config.Default())
	opts := DefaultOptions()
	opts.Floating = false
	return New(f, state, opts), state
}

func newFloating(f *fakePlatform) (*Sampler, *app.State) {
	state := app.NewState(config.Default())
	return New(f, state, DefaultOptions()), state
}

func TestCaptureRect(t *testing.T) {
	tests := []struct {
		name       string
		p          geometry.PointInt
		size       int
		wantOrigin geometry.PointInt
		wantSide   int
	}{
		{"default preview", geometry.Pt(500, 500), 21, geometry.Pt(490, 490), 21},
		{"single pixel", geometry.Pt(10, 20), 1, geometry.Pt(10, 20), 1},
		{"near origin", geometry.Pt(2, 3), 9, geometry.Pt(-2, -1), 9},
		{"max preview", geometry.Pt(100, 100), 25, geometry.Pt(88, 88), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, side := CaptureRect(tt.p, tt.size)
			assert.Equal(t, tt.wantOrigin, origin)
			assert.Equal(t, tt.wantSide, side)
		})
	}
}

func TestAverageCenterTruncates(t *testing.T) {
	grid := colorutil.NewPixelGrid(3)
	grid.Pixels[4] = colorutil.NewColor(30, 60, 90)

	// Sums (30,60,90) over 9 samples floor to (3,6,10).
	assert.Equal(t, colorutil.NewColor(3, 6, 10), AverageCenter(grid, 3))
}

func TestAverageCenterWindow(t *testing.T) {
	grid := colorutil.NewPixelGrid(5)
	for i := range grid.Pixels {
		grid.Pixels[i] = colorutil.NewColor(200, 200, 200)
	}
	// Inner 3x3 is black except the center.
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			grid.Pixels[y*5+x] = colorutil.Black
		}
	}
	grid.Pixels[12] = colorutil.NewColor(90, 9, 255)

	assert.Equal(t, colorutil.NewColor(90, 9, 255), AverageCenter(grid, 1))
	assert.Equal(t, colorutil.NewColor(10, 1, 28), AverageCenter(grid, 3))

	// 16 border pixels at 200, 8 inner at 0, center (90,9,255); count 25.
	assert.Equal(t, colorutil.NewColor((16*200+90)/25, (16*200+9)/25, (16*200+255)/25), AverageCenter(grid, 5))

	// Oversized windows clamp to the grid.
	assert.Equal(t, AverageCenter(grid, 5), AverageCenter(grid, 11))
}

func TestAverageCenterInvalidGrid(t *testing.T) {
	assert.Equal(t, colorutil.Color{}, AverageCenter(colorutil.PixelGrid{}, 3))
}

func TestTipOffset(t *testing.T) {
	layout := NewTipLayout(config.DefaultTip())

	tests := []struct {
		name   string
		cursor geometry.PointInt
		want   geometry.PointInt
	}{
		{"away from edges", geometry.Pt(500, 500), geometry.Pt(60, 30)},
		{"near right", geometry.Pt(1800, 500), geometry.Pt(-250, 30)},
		{"near bottom", geometry.Pt(500, 1000), geometry.Pt(60, -140)},
		{"near right and bottom", geometry.Pt(1800, 1000), geometry.Pt(-250, -140)},
		{"exactly at right threshold", geometry.Pt(1670, 500), geometry.Pt(60, 30)},
		{"one past right threshold", geometry.Pt(1671, 500), geometry.Pt(-250, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.Offset(tt.cursor, fullHD))
			assert.Equal(t, tt.cursor.Add(tt.want), layout.Target(tt.cursor, fullHD))
		})
	}
}

func TestTipOffsetSecondaryDisplay(t *testing.T) {
	layout := NewTipLayout(config.DefaultTip())
	secondary := geometry.RectInt{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// Right edge of the primary display is not an edge of the secondary one.
	assert.Equal(t, geometry.Pt(60, 30), layout.Offset(geometry.Pt(1925, 500), secondary))
	assert.Equal(t, geometry.Pt(-250, 30), layout.Offset(geometry.Pt(3800, 500), secondary))
}

func TestDamp(t *testing.T) {
	assert.Equal(t, geometry.Pt(30, 30), Damp(geometry.Pt(0, 0), geometry.Pt(100, 100), 0.7))
	assert.Equal(t, geometry.Pt(100, 100), Damp(geometry.Pt(100, 100), geometry.Pt(100, 100), 0.7))
	assert.Equal(t, geometry.Pt(-30, 70), Damp(geometry.Pt(0, 100), geometry.Pt(-100, 0), 0.7))
	assert.Equal(t, geometry.Pt(50, 0), Damp(geometry.Pt(0, 0), geometry.Pt(50, 0), 0))
	// One pixel away snaps instead of rounding back onto old.
	assert.Equal(t, geometry.Pt(100, 100), Damp(geometry.Pt(97, 97), geometry.Pt(100, 100), 0.7))
	assert.Equal(t, geometry.Pt(100, 100), Damp(geometry.Pt(99, 101), geometry.Pt(100, 100), 0.7))
}

func TestDampReachesTarget(t *testing.T) {
	tip := geometry.Pt(0, 0)
	target := geometry.Pt(100, 100)
	for i := 0; i < 100; i++ {
		tip = Damp(tip, target, 0.7)
	}
	assert.Equal(t, target, tip)
}

func TestStepPublishesFirstSample(t *testing.T) {
	f := &fakePlatform{fill: colorutil.NewColor(1, 2, 3)}
	f.setPositions(geometry.Pt(500, 500))
	s, state := newDocked(f)

	assert.True(t, s.Step())

	snap := state.Snapshot()
	assert.Equal(t, uint64(1), state.Writes())
	assert.Equal(t, geometry.Pt(500, 500), snap.Position)
	assert.Equal(t, colorutil.NewColor(1, 2, 3), snap.Color)
	assert.Equal(t, 21, snap.Grid.Size)
	assert.False(t, snap.HasTip)

	require.Len(t, f.captures, 1)
	assert.Equal(t, captureCall{origin: geometry.Pt(490, 490), size: 21}, f.captures[0])
}

func TestStepSuppressesUnchanged(t *testing.T) {
	f := &fakePlatform{fill: colorutil.NewColor(9, 9, 9)}
	f.setPositions(geometry.Pt(10, 10))
	s, state := newDocked(f)

	for i := 0; i < 5; i++ {
		s.Step()
	}
	assert.Equal(t, uint64(1), state.Writes())
	assert.Equal(t, uint64(5), s.Stats().Iterations)
	assert.Equal(t, uint64(1), s.Stats().Publishes)
}

func TestStepPublishesOnChange(t *testing.T) {
	f := &fakePlatform{fill: colorutil.NewColor(9, 9, 9)}
	f.setPositions(geometry.Pt(10, 10), geometry.Pt(10, 10), geometry.Pt(11, 10))
	s, state := newDocked(f)

	assert.True(t, s.Step())
	assert.False(t, s.Step())
	assert.True(t, s.Step(), "position change publishes")
	assert.Equal(t, uint64(2), state.Writes())

	f.fill = colorutil.NewColor(10, 9, 9)
	assert.True(t, s.Step(), "color change publishes")
	assert.Equal(t, uint64(3), state.Writes())
	assert.Equal(t, colorutil.NewColor(10, 9, 9), state.Snapshot().Color)
}

func TestStepSkipsOnCursorFailure(t *testing.T) {
	f := &fakePlatform{cursorErr: fmt.Errorf("%w: test", platform.ErrCursorUnavailable)}
	s, state := newDocked(f)

	assert.False(t, s.Step())
	assert.False(t, s.Step())
	assert.Equal(t, uint64(0), state.Writes())
	assert.Equal(t, uint64(2), s.Stats().CursorSkips)
	assert.Empty(t, f.captures)
}

func TestStepSkipsOnCaptureFailure(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White}
	f.setPositions(geometry.Pt(10, 10), geometry.Pt(20, 20))
	s, state := newDocked(f)

	require.True(t, s.Step())
	before := state.Snapshot()

	f.captureErr = fmt.Errorf("%w: display gone", platform.ErrCaptureUnavailable)
	assert.False(t, s.Step())

	// The last good sample is kept.
	after := state.Snapshot()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, uint64(1), s.Stats().CaptureSkips)
}

func TestStepSkipsWhenNoDisplay(t *testing.T) {
	f := &fakePlatform{
		fill:       colorutil.White,
		displayErr: fmt.Errorf("%w: no display", platform.ErrCaptureUnavailable),
	}
	f.setPositions(geometry.Pt(-5000, 10))
	s, state := newFloating(f)

	assert.False(t, s.Step())
	assert.Equal(t, uint64(0), state.Writes())
	assert.Empty(t, f.moves)
}

func TestStepReadsLatestConfig(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White}
	f.setPositions(geometry.Pt(100, 100))
	s, state := newDocked(f)

	s.Step()
	state.SetSampleConfig(config.SampleConfig{PreviewSize: 5, AveragingWindow: 3})
	s.Step()

	require.Len(t, f.captures, 2)
	assert.Equal(t, 21, f.captures[0].size)
	assert.Equal(t, captureCall{origin: geometry.Pt(98, 98), size: 5}, f.captures[1])
}

func TestStepClampsAveragingWindow(t *testing.T) {
	f := &fakePlatform{fill: colorutil.NewColor(50, 60, 70)}
	f.setPositions(geometry.Pt(100, 100))
	s, state := newDocked(f)

	state.SetSampleConfig(config.SampleConfig{PreviewSize: 5, AveragingWindow: 9})
	require.Equal(t, 5, state.SampleConfig().AveragingWindow)

	assert.True(t, s.Step())
	assert.Equal(t, colorutil.NewColor(50, 60, 70), state.Snapshot().Color)
}

func TestStepPublishesResizedPreview(t *testing.T) {
	f := &fakePlatform{fill: colorutil.NewColor(40, 80, 120)}
	f.setPositions(geometry.Pt(300, 300))
	s, state := newDocked(f)

	require.True(t, s.Step())
	require.Equal(t, 21, state.Snapshot().Grid.Size)

	state.SetSampleConfig(config.SampleConfig{PreviewSize: 5, AveragingWindow: 1})
	assert.True(t, s.Step())
	assert.Equal(t, 5, state.Snapshot().Grid.Size)
	assert.Equal(t, uint64(2), state.Writes())

	assert.False(t, s.Step())
}

func TestFloatingTipSnapsThenDamps(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White, display: fullHD}
	f.setPositions(geometry.Pt(500, 500))
	s, state := newFloating(f)

	// First placement snaps to the target.
	require.True(t, s.Step())
	require.Len(t, f.moves, 1)
	assert.Equal(t, geometry.Pt(560, 530), f.moves[0])
	assert.Equal(t, geometry.Pt(560, 530), state.Snapshot().Tip)
	assert.True(t, state.Snapshot().HasTip)

	// Unchanged cursor and color: no write, no move.
	assert.False(t, s.Step())
	assert.Len(t, f.moves, 1)
	assert.Equal(t, uint64(1), state.Writes())

	// Crossing into the bottom-right corner flips the tip, damped.
	f.setPositions(geometry.Pt(1800, 1000))
	require.True(t, s.Step())
	target := geometry.Pt(1800-250, 1000-140)
	want := Damp(geometry.Pt(560, 530), target, 0.7)
	assert.Equal(t, want, f.moves[1])
	assert.Equal(t, want, state.Snapshot().Tip)
}

func TestFloatingTipConverges(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White, display: fullHD}
	f.setPositions(geometry.Pt(500, 500))
	s, state := newFloating(f)
	s.Step()

	f.setPositions(geometry.Pt(600, 600))
	for i := 0; i < 50; i++ {
		s.Step()
	}
	assert.Equal(t, geometry.Pt(660, 630), state.Snapshot().Tip)

	// Once settled the tip stops moving and the state stops changing.
	writes := state.Writes()
	moves := len(f.moves)
	s.Step()
	assert.Equal(t, writes, state.Writes())
	assert.Equal(t, moves, len(f.moves))
}

func TestDockedNeverMoves(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White, display: fullHD}
	f.setPositions(geometry.Pt(1, 1), geometry.Pt(1900, 1070))
	s, _ := newDocked(f)

	s.Step()
	s.Step()
	assert.Empty(t, f.moves)
}

func TestFailureWarning(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(&bytes.Buffer{}) })

	f := &fakePlatform{cursorErr: fmt.Errorf("%w: locked", platform.ErrCursorUnavailable)}
	s, _ := newDocked(f)

	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }

	s.Step()
	clock = clock.Add(2 * time.Second)
	s.Step()
	assert.NotContains(t, buf.String(), "Sampling keeps failing")

	clock = clock.Add(4 * time.Second)
	s.Step()
	assert.Contains(t, buf.String(), "Sampling keeps failing")
}

func TestRunStopsOnCancel(t *testing.T) {
	f := &fakePlatform{fill: colorutil.White}
	f.setPositions(geometry.Pt(1, 1), geometry.Pt(2, 2), geometry.Pt(3, 3))
	state := app.NewState(config.Default())
	opts := DefaultOptions()
	opts.Interval = time.Millisecond
	opts.Floating = false
	s := New(f, state, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return state.Writes() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, uint64(3), s.Stats().Publishes)
}
