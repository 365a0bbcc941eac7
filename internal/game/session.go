package game

import (
	"time"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// EndReason says why the last run ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonTimeExpired
	ReasonHazardHit
)

// String returns the short form stored in the run history.
func (r EndReason) String() string {
	switch r {
	case ReasonTimeExpired:
		return "time"
	case ReasonHazardHit:
		return "rug"
	default:
		return "none"
	}
}

// Leaderboard is the high score table a session reports to.
type Leaderboard interface {
	Load() []leaderboard.Entry
	Commit(name string, score int) []leaderboard.Entry
}

// BadgeLedger is implemented by leaderboards that also remember badges.
type BadgeLedger interface {
	HasBadge(name string) bool
	MarkBadge(name string)
}

// EventType identifies a session event.
type EventType int

const (
	EventStarted EventType = iota
	EventSpawned
	EventHit
	EventMiss
	EventEnded
)

// Event is emitted to the session listener as state changes.
type Event struct {
	Type     EventType
	Icon     Icon      // EventSpawned, EventHit
	Points   int       // EventHit
	Combo    int       // Combo after the event
	Score    int       // Score after the event
	Reason   EndReason // EventEnded
	Duration time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithListener registers a callback for session events. The callback runs
// inline and must not call back into the session.
func WithListener(fn func(Event)) Option {
	return func(s *Session) {
		s.listener = fn
	}
}

// WithArchetypes replaces the spawn table.
func WithArchetypes(set []Archetype) Option {
	return func(s *Session) {
		if len(set) > 0 {
			s.archetypes = set
		}
	}
}

// Session is one player's game. All methods must be called from a single
// goroutine; the host drives time by calling Advance.
type Session struct {
	cfg        config.Config
	player     string
	board      Leaderboard
	rng        Rand
	archetypes []Archetype
	difficulty *config.DifficultyManager
	listener   func(Event)

	sched *Scheduler
	field *Field

	phase     Phase
	score     int
	combo     int
	best      int
	remaining time.Duration
	reason    EndReason
	startedAt time.Time
	lastSeen  time.Time

	markers    []Marker
	nextMarker int
	minted     bool
}

// NewSession creates an idle session for player. The player's best score is
// read from board.
func NewSession(cfg config.Config, player string, board Leaderboard, rng Rand, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		player:     player,
		board:      board,
		rng:        rng,
		archetypes: Archetypes,
		difficulty: config.NewDifficultyManager(cfg.DifficultyRamp()),
		sched:      NewScheduler(),
		field:      NewField(cfg.Field),
		phase:      PhaseIdle,
		combo:      1,
		remaining:  cfg.Session.Duration(),
		nextMarker: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.syncBest()
	return s
}

// syncBest reloads the player's best on record. Other sessions may share
// the board under the same name.
func (s *Session) syncBest() {
	for _, e := range s.board.Load() {
		if e.Name == s.player {
			s.best = e.BestScore
			return
		}
	}
}

// Start begins a run at now. It returns false if a run is already in
// progress or the configured tick periods are unusable.
func (s *Session) Start(now time.Time) bool {
	if s.phase == PhaseRunning {
		return false
	}
	s.syncBest()

	tasks := []struct {
		period time.Duration
		fn     func(time.Time)
	}{
		// Clock first so a tie at the final instant ends the run before motion
		{s.cfg.Session.ClockInterval(), s.Tick},
		{s.cfg.Field.MotionInterval(), s.Move},
		{s.cfg.Field.SpawnInterval(), func(time.Time) { s.Spawn() }},
	}
	for _, t := range tasks {
		if _, err := s.sched.Every(now, t.period, t.fn); err != nil {
			s.sched.CancelAll()
			return false
		}
	}

	s.score = 0
	s.combo = 1
	s.field.Clear()
	s.markers = nil
	s.remaining = s.cfg.Session.Duration()
	s.reason = ReasonNone
	s.startedAt = now
	s.lastSeen = now
	s.phase = PhaseRunning

	s.emit(Event{Type: EventStarted, Combo: s.combo})
	return true
}

// Advance runs every periodic task due by now and drops expired markers.
func (s *Session) Advance(now time.Time) {
	s.sched.Advance(now)
	s.pruneMarkers(now)
}

// Tick updates the remaining time and ends the run when it reaches zero.
func (s *Session) Tick(now time.Time) {
	if s.phase != PhaseRunning {
		return
	}
	s.lastSeen = now
	elapsed := now.Sub(s.startedAt)
	s.remaining = max(s.cfg.Session.Duration()-elapsed, 0)
	if s.remaining == 0 {
		s.End(ReasonTimeExpired)
	}
}

// Spawn adds one random icon to the field.
func (s *Session) Spawn() {
	if s.phase != PhaseRunning {
		return
	}
	icon := s.field.Spawn(s.rng, s.archetypes)
	s.emit(Event{Type: EventSpawned, Icon: icon, Combo: s.combo, Score: s.score})
}

// Move advances the field by one motion tick at now.
func (s *Session) Move(now time.Time) {
	if s.phase != PhaseRunning {
		return
	}
	s.lastSeen = now
	s.field.Step(s.DifficultyAt(now))
}

// DifficultyAt returns the fall speed factor at now.
func (s *Session) DifficultyAt(now time.Time) float64 {
	return s.difficulty.Factor(s.score, now.Sub(s.startedAt))
}

// End finishes the run. The player's best is recomputed and committed to
// the leaderboard even when it did not improve.
func (s *Session) End(reason EndReason) {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseOver
	s.reason = reason
	s.field.Clear()
	s.combo = 1
	s.sched.CancelAll()

	s.syncBest()
	s.best = max(s.score, s.best)
	s.board.Commit(s.player, s.best)

	s.emit(Event{
		Type:     EventEnded,
		Combo:    s.combo,
		Score:    s.score,
		Reason:   reason,
		Duration: s.lastSeen.Sub(s.startedAt),
	})
}

// Reset returns a finished session to idle, showing the intro panel again.
func (s *Session) Reset() {
	if s.phase != PhaseOver {
		return
	}
	s.phase = PhaseIdle
	s.markers = nil
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}

// Player returns the name results are recorded under.
func (s *Session) Player() string { return s.player }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the score of the current or last run.
func (s *Session) Score() int { return s.score }

// Combo returns the current combo multiplier.
func (s *Session) Combo() int { return s.combo }

// Best returns the player's best score.
func (s *Session) Best() int { return s.best }

// Reason returns why the last run ended.
func (s *Session) Reason() EndReason { return s.reason }

// Remaining returns the time left in the run.
func (s *Session) Remaining() time.Duration { return s.remaining }

// RemainingSeconds returns the time left rounded up to whole seconds.
func (s *Session) RemainingSeconds() int {
	return int((s.remaining + time.Second - 1) / time.Second)
}

// Icons returns the in-flight icons, oldest first.
func (s *Session) Icons() []Icon { return s.field.Icons() }

// Leaderboard returns the current table.
func (s *Session) Leaderboard() []leaderboard.Entry { return s.board.Load() }

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }
