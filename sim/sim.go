package sim

import (
	"fmt"
	"log"

	"github.com/milk9111/jamble/ability"
	"github.com/milk9111/jamble/body"
	"github.com/milk9111/jamble/course"
	"github.com/milk9111/jamble/movement"
	"github.com/milk9111/jamble/run"
)

type pendingConfig struct {
	cfg     Config
	catalog *ability.Catalog
}

// Simulation owns the body, its abilities, the obstacle course and the run
// lifecycle, and advances them in a fixed order each frame.
type Simulation struct {
	cfg     Config
	pending *pendingConfig

	body      *body.Body
	movement  *movement.System
	run       *run.Machine
	abilities *ability.Manager
	course    *course.Course

	direction int
	laps      int
	arrivals  int
	nowMs     float64

	awaitingStart      bool
	waitGroundForStart bool
	inCountdown        bool
	countdownMs        float64

	deathMs        float64
	wiggleMs       float64
	resetDelayMs   float64
	resetAvailable bool
	lastHit        *course.Hit

	wasGrounded   bool
	landCallbacks []func()
}

// New builds a simulation and equips cfg's loadout. obstacles may be nil.
func New(cfg Config, obstacles *course.Course) (*Simulation, error) {
	cfg = cfg.Sanitized()
	catalog, err := newCatalog(cfg)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		run:    run.New(),
		course: obstacles,
	}
	if err := s.applyConfig(cfg, catalog); err != nil {
		return nil, err
	}
	s.Reset()
	return s, nil
}

func (s *Simulation) applyConfig(cfg Config, catalog *ability.Catalog) error {
	if s.abilities != nil {
		s.abilities.Clear()
	}
	s.cfg = cfg
	s.body = body.New(cfg.Body)
	if s.movement == nil {
		s.movement = movement.New(cfg.Speed)
	}
	s.movement.SetBaseSpeed(cfg.Speed)

	m, err := ability.NewManager(catalog, &capabilities{s: s}, cfg.Limits)
	if err != nil {
		return fmt.Errorf("sim: ability manager: %w", err)
	}
	for id, c := range cfg.Overrides {
		m.Configure(id, c)
	}
	s.abilities = m
	for _, id := range cfg.Loadout {
		s.Equip(id)
	}
	return nil
}

// QueueConfig stages cfg for the next Reset. When the runner is idle and
// waiting for a start it is applied right away. Scripts are compiled here so
// a broken config is rejected without touching the running one.
func (s *Simulation) QueueConfig(cfg Config) error {
	cfg = cfg.Sanitized()
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	s.pending = &pendingConfig{cfg: cfg, catalog: catalog}
	if s.Idle() {
		s.Reset()
	}
	return nil
}

// HasPendingConfig reports whether a queued config is waiting for Reset.
func (s *Simulation) HasPendingConfig() bool { return s.pending != nil }

// SetCourse swaps the obstacle layer. nil removes every obstacle.
func (s *Simulation) SetCourse(c *course.Course) {
	s.course = c
}

// Reset returns everything to the pre-start state: runner frozen at the left
// edge, fresh ability instances, obstacles back at their spawn points.
func (s *Simulation) Reset() {
	if p := s.pending; p != nil {
		s.pending = nil
		if err := s.applyConfig(p.cfg, p.catalog); err != nil {
			log.Printf("sim: apply config: %v", err)
		}
	}

	s.movement.ClearImpulses()
	s.body.Reset()
	for _, id := range s.abilities.Reload() {
		log.Printf("sim: re-equip %s failed: %s", id, s.abilities.LastError())
	}
	if s.course != nil {
		s.course.Reset()
	}

	s.direction = 1
	s.arrivals = 0
	s.laps = s.cfg.Laps
	s.run.SetRunsCompleted(0)
	s.run.SetInitialLaps(s.laps)

	s.awaitingStart = true
	s.waitGroundForStart = false
	s.inCountdown = false
	s.countdownMs = 0
	s.clearDeath()

	s.wasGrounded = true
	s.landCallbacks = nil
}

func (s *Simulation) clearDeath() {
	s.deathMs = 0
	s.wiggleMs = 0
	s.resetDelayMs = 0
	s.resetAvailable = false
	s.lastHit = nil
}

// Start begins the countdown. It is refused unless the runner is idle and
// grounded.
func (s *Simulation) Start() bool {
	if s.waitGroundForStart || !s.awaitingStart || s.body.FrozenDeath {
		return false
	}
	if !s.run.StartCountdown(s.laps) {
		return false
	}
	s.awaitingStart = false
	s.body.SetPrestart()
	s.inCountdown = true
	s.countdownMs = s.cfg.StartFreezeMs
	return true
}

// Idle reports whether the runner waits for a start.
func (s *Simulation) Idle() bool {
	return s.awaitingStart && s.body.FrozenStart && !s.inCountdown
}

// SetLaps changes the laps of the next run. Only allowed while idle.
func (s *Simulation) SetLaps(laps int) bool {
	if !s.Idle() {
		return false
	}
	s.laps = max(run.MinLaps, min(run.MaxLaps, laps))
	s.run.ApplyLapValue(s.laps)
	return true
}

func (s *Simulation) Laps() int { return s.laps }

// Equip equips id, logging the reason on failure.
func (s *Simulation) Equip(id string) bool {
	if s.abilities.Equip(id) {
		return true
	}
	log.Printf("sim: equip %s failed: %s", id, s.abilities.LastError())
	return false
}

func (s *Simulation) Unequip(id string) bool {
	return s.abilities.Unequip(id)
}

func (s *Simulation) Config() Config                { return s.cfg }
func (s *Simulation) Body() *body.Body              { return s.body }
func (s *Simulation) Abilities() *ability.Manager   { return s.abilities }
func (s *Simulation) Course() *course.Course        { return s.course }
func (s *Simulation) Movement() *movement.System    { return s.movement }
func (s *Simulation) Direction() int                { return s.direction }
func (s *Simulation) Snapshot() run.Snapshot        { return s.run.Snapshot() }
func (s *Simulation) WaitingForGround() bool        { return s.waitGroundForStart }
func (s *Simulation) ResetAvailable() bool          { return s.resetAvailable }
func (s *Simulation) LastHit() (course.Hit, bool)   { return derefHit(s.lastHit) }
func (s *Simulation) CountdownRemainingMs() float64 { return max(0, s.countdownMs) }

func derefHit(h *course.Hit) (course.Hit, bool) {
	if h == nil {
		return course.Hit{}, false
	}
	return *h, true
}
