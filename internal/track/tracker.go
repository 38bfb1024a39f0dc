// Package track turns a stream of position fixes into distance-quest
// progress. The sensor itself sits behind the Watcher interface.
package track

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"fitquest/internal/geo"
)

// Fix is one position report from the location sensor.
type Fix struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	AccuracyM float64   `json:"accuracy"`
	Time      time.Time `json:"time"`
}

// Watcher is the subscribe side of the location sensor boundary. Watch
// delivers fixes until the context is canceled or the sensor fails; the
// fix channel is closed when the stream ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Fix, <-chan error, error)
}

// Applier receives computed kilometer deltas for the tracked quest.
type Applier interface {
	ApplyDistance(ctx context.Context, questID string, km float64) error
}

// ErrAlreadyTracking enforces the one-active-tracking-session rule.
var ErrAlreadyTracking = errors.New("a tracking session is already running")

// Tracker runs location tracking sessions against exactly one quest at a
// time. The first fix of a session only anchors; every later fix applies
// the great-circle distance from the previous one. The anchor is local to
// the session, so stopping (or a sensor error) discards it and a later
// session can never apply a stale delta.
type Tracker struct {
	watcher Watcher
	sink    Applier
	logger  *slog.Logger

	active atomic.Bool
}

func NewTracker(watcher Watcher, sink Applier, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{watcher: watcher, sink: sink, logger: logger}
}

// Track runs one tracking session until the fix stream ends, the context is
// canceled, or the sensor reports an error. A sensor error tears the
// session down and is returned; the player record is left as-is.
func (t *Tracker) Track(ctx context.Context, questID string) error {
	if !t.active.CompareAndSwap(false, true) {
		return ErrAlreadyTracking
	}
	defer t.active.Store(false)

	fixes, sensorErrs, err := t.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start location watch: %w", err)
	}

	var anchor *geo.Point
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sensorErrs:
			t.logger.Warn("location sensor failed, stopping tracking", "quest", questID, "error", err)
			return fmt.Errorf("location sensor: %w", err)
		case fix, ok := <-fixes:
			if !ok {
				return nil
			}
			cur := geo.Point{Lat: fix.Lat, Lon: fix.Lon}
			if anchor == nil {
				anchor = &cur
				continue
			}
			km := geo.Distance(*anchor, cur)
			anchor = &cur
			if km == 0 {
				continue
			}
			if err := t.sink.ApplyDistance(ctx, questID, km); err != nil {
				return err
			}
			t.logger.Debug("distance applied", "quest", questID, "km", km)
		}
	}
}
