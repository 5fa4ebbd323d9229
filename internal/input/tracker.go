package input

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// DefaultStaleAfter is how long a tracker frame stays valid.
const DefaultStaleAfter = 200 * time.Millisecond

// ErrTrackerClosed is reported by Err after Close.
var ErrTrackerClosed = errors.New("input: tracker closed")

// TrackerFrame is one message of the tracker protocol:
//
//	{"points":[{"x":0.42,"y":0.61}]}
type TrackerFrame struct {
	Points []TrackerPoint `json:"points"`
}

// TrackerPoint is a normalized position reported by the tracker.
type TrackerPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrackerOption configures a TrackerSource.
type TrackerOption func(*TrackerSource)

// WithStaleAfter sets how long a frame remains valid.
func WithStaleAfter(d time.Duration) TrackerOption {
	return func(t *TrackerSource) {
		if d > 0 {
			t.staleAfter = d
		}
	}
}

// TrackerSource reads hand positions from an external tracker over a
// websocket. A background reader keeps the newest frame; Poll never blocks.
type TrackerSource struct {
	conn       *websocket.Conn
	cancel     context.CancelFunc
	eg         *errgroup.Group
	staleAfter time.Duration
	now        func() time.Time

	mu     sync.Mutex
	points []core.Point
	at     time.Time
	err    error

	closeOnce sync.Once
}

// DialTracker connects to a tracker at url (ws:// or wss://) and starts reading.
func DialTracker(ctx context.Context, url string, opts ...TrackerOption) (*TrackerSource, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("input: dial tracker %s: %w", url, err)
	}
	return newTrackerSource(conn, opts...), nil
}

func newTrackerSource(conn *websocket.Conn, opts ...TrackerOption) *TrackerSource {
	t := &TrackerSource{
		conn:       conn,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	eg, ctx := errgroup.WithContext(ctx)
	t.eg = eg
	eg.Go(func() error {
		return t.readLoop(ctx)
	})
	return t
}

func (t *TrackerSource) readLoop(ctx context.Context) error {
	for {
		var frame TrackerFrame
		if err := wsjson.Read(ctx, t.conn, &frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			err = fmt.Errorf("input: read tracker: %w", err)
			t.fail(err)
			return err
		}
		t.store(frame)
	}
}

func (t *TrackerSource) store(frame TrackerFrame) {
	points := make([]core.Point, len(frame.Points))
	for i, p := range frame.Points {
		points[i] = core.Point{X: p.X, Y: p.Y}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.points = points
	t.at = t.now()
}

func (t *TrackerSource) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

// Poll returns the points of the newest frame if it is fresher than the
// stale limit.
func (t *TrackerSource) Poll() []core.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.points) == 0 || t.now().Sub(t.at) > t.staleAfter {
		return nil
	}
	out := make([]core.Point, len(t.points))
	copy(out, t.points)
	return out
}

// Err returns the failure that stopped the reader, if any.
func (t *TrackerSource) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close stops the reader, waits for it to exit and releases the connection.
// It is safe to call more than once.
func (t *TrackerSource) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		// A read failure was already recorded for Err.
		_ = t.eg.Wait()
		// Canceling a pending read closes the socket already.
		_ = t.conn.CloseNow()

		t.mu.Lock()
		defer t.mu.Unlock()
		t.points = nil
		if t.err == nil {
			t.err = ErrTrackerClosed
		}
	})
	return nil
}
