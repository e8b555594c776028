package hint

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/chatter/nudge/internal/keymap"
	"github.com/chatter/nudge/internal/logger"
)

// Sink is the presentation surface for hints. Calls are fire-and-forget;
// implementations must not call back into the Scheduler. A panicking sink
// is caught and logged, never fatal.
type Sink interface {
	Show(text string)
	Clear()
}

// Docs looks up documentation text for a command.
type Docs interface {
	Doc(cmd keymap.Command) (doc string, ok bool)
}

// NoBindingsMessage is shown when the current scope has nothing teachable.
const NoBindingsMessage = "No bindings to learn here."

const (
	// DefaultIdleThreshold is the inactivity duration before hints start.
	DefaultIdleThreshold = 60 * time.Second
	// DefaultUpdatePeriod is the delay between hints while idle.
	DefaultUpdatePeriod = 12 * time.Second
)

// Scheduler owns the idle/active state machine. It starts active; after
// the idle threshold passes with no Activity call it enters the hint loop,
// showing a random binding every update period until the next activity.
//
// All mutation happens under one mutex, so timer callbacks, input events
// and configuration changes may arrive from any goroutine. Generation
// counters make canceled timer callbacks no-ops even when a tick was
// already in flight when the cancel ran.
type Scheduler struct {
	mu sync.Mutex

	cache     *keymap.Cache
	docs      Docs
	formatter *Formatter
	sink      Sink
	clock     Clock
	log       *logger.Logger
	pick      func(n int) int

	idleThreshold time.Duration
	updatePeriod  time.Duration
	selector      keymap.Selector

	enabled   bool
	idle      bool
	gen       uint64
	idleTimer Timer
	tickTimer Timer
}

// NewScheduler creates a disabled Scheduler with default timings, drawing
// from all accessible bindings. Call Enable to start it.
func NewScheduler(cache *keymap.Cache, docs Docs, formatter *Formatter, sink Sink, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cache:         cache,
		docs:          docs,
		formatter:     formatter,
		sink:          sink,
		clock:         SystemClock(),
		log:           log,
		pick:          rand.IntN,
		idleThreshold: DefaultIdleThreshold,
		updatePeriod:  DefaultUpdatePeriod,
		selector:      keymap.Selector{Scope: keymap.ScopeAll},
	}
}

// SetIdleThreshold changes the inactivity duration. Takes effect the next
// time the idle timer is armed.
func (s *Scheduler) SetIdleThreshold(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleThreshold = d
}

// SetUpdatePeriod changes the delay between hints while idle. Takes effect
// on the next scheduled tick.
func (s *Scheduler) SetUpdatePeriod(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatePeriod = d
}

// SetSelector changes which bindings hints are drawn from. Picked up on
// the next cache lookup, not retroactively.
func (s *Scheduler) SetSelector(sel keymap.Selector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector = sel
}

// SetSink replaces the display sink.
func (s *Scheduler) SetSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Enable turns the scheduler on. The machine starts active; hints begin
// after one full idle threshold with no activity. Enabling an enabled
// scheduler is a no-op.
func (s *Scheduler) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		return
	}

	s.enabled = true
	s.idle = false
	s.armIdleLocked()
	s.log.Info("hint scheduler enabled", "idle_threshold", s.idleThreshold, "update_period", s.updatePeriod)
}

// Disable turns the scheduler off: both timers are canceled, any shown
// hint is cleared and the machine resets to active. Idempotent.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	s.enabled = false
	s.gen++
	s.stopTimersLocked()
	s.idle = false
	s.safeClear()
	s.log.Info("hint scheduler disabled")
}

// Activity records one input event. While idle this cancels the hint loop,
// clears the display and invalidates the binding cache (the active scope
// may have changed); the cancel/clear work runs only on the first event of
// an idle session. In either state the idle countdown restarts.
func (s *Scheduler) Activity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	s.gen++

	if s.idle {
		s.idle = false
		if s.tickTimer != nil {
			s.tickTimer.Stop()
			s.tickTimer = nil
		}
		s.cache.Invalidate()
		s.safeClear()
		s.log.Debug("hint loop stopped on activity")
	}

	s.armIdleLocked()
}

// ShowNow enters the hint loop immediately, as if the idle threshold had
// just elapsed. The next activity exits it as usual. No-op while disabled
// or already idle.
func (s *Scheduler) ShowNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.idle {
		return
	}

	s.gen++
	s.stopTimersLocked()
	s.idle = true
	s.showHintLocked()
	s.scheduleTickLocked()
}

// Idle reports whether the scheduler is currently in the hint loop.
func (s *Scheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle
}

func (s *Scheduler) armIdleLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
	}
	gen := s.gen
	s.idleTimer = s.clock.AfterFunc(s.idleThreshold, func() { s.onIdle(gen) })
}

func (s *Scheduler) scheduleTickLocked() {
	gen := s.gen
	s.tickTimer = s.clock.AfterFunc(s.updatePeriod, func() { s.onTick(gen) })
}

func (s *Scheduler) stopTimersLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
}

func (s *Scheduler) onIdle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || gen != s.gen {
		return
	}

	s.idle = true
	s.log.Debug("idle threshold reached, starting hint loop")
	s.showHintLocked()
	s.scheduleTickLocked()
}

func (s *Scheduler) onTick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || !s.idle || gen != s.gen {
		return
	}

	s.showHintLocked()
	s.scheduleTickLocked()
}

// showHintLocked picks one binding uniformly at random and displays it.
// Ticks draw independently, so immediate repeats are possible.
func (s *Scheduler) showHintLocked() {
	pairs, err := s.cache.Get(s.selector)
	if err != nil {
		s.log.Warn("binding lookup failed", "err", err)
		pairs = nil
	}

	if len(pairs) == 0 {
		s.safeShow(NoBindingsMessage)
		return
	}

	pair := pairs[s.pick(len(pairs))]

	var doc string
	if s.docs != nil {
		if d, ok := s.docs.Doc(pair.Command); ok {
			doc = d
		}
	}

	s.safeShow(s.formatter.Format(pair.Key, pair.Command, doc))
}

func (s *Scheduler) safeShow(text string) {
	defer s.recoverSink("show")
	s.sink.Show(text)
}

func (s *Scheduler) safeClear() {
	defer s.recoverSink("clear")
	s.sink.Clear()
}

func (s *Scheduler) recoverSink(op string) {
	if r := recover(); r != nil {
		s.log.Warn("display sink failed", "op", op, "err", r)
	}
}
