package timer

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/hybridpro/internal/telemetry/metrics"
)

const (
	DefaultDuration = 90 * time.Second
	defaultTick     = time.Second
)

type State struct {
	RemainingSeconds int    `json:"remainingSeconds"`
	Active           bool   `json:"active"`
	Display          string `json:"display"`
}

// RestTimer counts down between sets. Every tick takes one second off the
// remaining time; the tick interval itself is configurable so tests can run fast.
type RestTimer struct {
	mutex     sync.Mutex
	wg        sync.WaitGroup
	duration  time.Duration
	tick      time.Duration
	remaining time.Duration
	active    bool
	stop      chan struct{}

	metricsManager *metrics.Manager
}

func New(duration, tick time.Duration, metricsManager *metrics.Manager) *RestTimer {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if tick <= 0 {
		tick = defaultTick
	}
	return &RestTimer{
		duration:       duration,
		tick:           tick,
		remaining:      duration,
		metricsManager: metricsManager,
	}
}

// Start resumes the countdown. It does nothing when the timer is already
// running or has reached zero.
func (t *RestTimer) Start() State {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.active && t.remaining > 0 {
		t.active = true
		t.stop = make(chan struct{})
		t.wg.Add(1)
		go t.run(t.stop)
	}
	return t.stateLocked()
}

func (t *RestTimer) Pause() State {
	t.halt()
	return t.State()
}

func (t *RestTimer) Toggle() State {
	t.mutex.Lock()
	active := t.active
	t.mutex.Unlock()

	if active {
		return t.Pause()
	}
	return t.Start()
}

// Reset pauses the timer and restores the full duration.
func (t *RestTimer) Reset() State {
	t.halt()
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.remaining = t.duration
	return t.stateLocked()
}

func (t *RestTimer) State() State {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.stateLocked()
}

// Close stops the countdown goroutine, if any.
func (t *RestTimer) Close() {
	t.halt()
}

func (t *RestTimer) halt() {
	t.mutex.Lock()
	if t.active {
		t.active = false
		close(t.stop)
		t.stop = nil
	}
	t.mutex.Unlock()
	t.wg.Wait()
}

func (t *RestTimer) run(stop <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if t.step(stop) {
				return
			}
		}
	}
}

func (t *RestTimer) step(stop <-chan struct{}) (done bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	select {
	case <-stop:
		return true
	default:
	}

	t.remaining -= time.Second
	if t.remaining > 0 {
		return false
	}

	t.remaining = 0
	t.active = false
	t.stop = nil
	log.Debugln("rest timer finished")
	if t.metricsManager != nil {
		t.metricsManager.CounterRestTimersCompleted.Inc()
	}
	return true
}

func (t *RestTimer) stateLocked() State {
	return State{
		RemainingSeconds: int(t.remaining / time.Second),
		Active:           t.active,
		Display:          Format(t.remaining),
	}
}

// Format renders a duration as m:ss.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
