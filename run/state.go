package run

import "math"

// State is a phase of the run lifecycle.
type State int

const (
	Idle State = iota
	Countdown
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Countdown:
		return "countdown"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "idle"
}

const (
	MinLaps = 1
	MaxLaps = 9
)

// ClampLaps floors v into [MinLaps, MaxLaps]. NaN and infinities become
// MinLaps.
func ClampLaps(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinLaps
	}
	return int(max(MinLaps, min(MaxLaps, math.Floor(v))))
}

func clampLaps(n int) int {
	return max(MinLaps, min(MaxLaps, n))
}

// Snapshot is a read-only view for lap and run display.
type Snapshot struct {
	State         State
	LapsTarget    int
	LapsRemaining int
	RunsCompleted int
}

// Machine tracks Idle -> Countdown -> Running -> Finished -> Idle.
type Machine struct {
	state         State
	lapsTarget    int
	lapsRemaining int
	runsCompleted int
}

func New() *Machine {
	return &Machine{lapsTarget: MinLaps, lapsRemaining: MinLaps}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) SetInitialLaps(laps int) {
	m.ApplyLapValue(laps)
	m.state = Idle
}

// ApplyLapValue re-arms target and remaining laps without changing state.
func (m *Machine) ApplyLapValue(laps int) {
	m.lapsTarget = clampLaps(laps)
	m.lapsRemaining = m.lapsTarget
}

// StartCountdown arms the laps and enters Countdown. Only valid from Idle.
func (m *Machine) StartCountdown(laps int) bool {
	if m.state != Idle {
		return false
	}
	m.ApplyLapValue(laps)
	m.state = Countdown
	return true
}

// StartRun moves Countdown to Running and ignores every other state.
func (m *Machine) StartRun() bool {
	if m.state != Countdown {
		return false
	}
	m.state = Running
	return true
}

// HandleEdgeArrival counts a lap. It reports true when that lap completed
// the run, which is then Finished.
func (m *Machine) HandleEdgeArrival() bool {
	if m.state != Running {
		return false
	}
	if m.lapsRemaining > 0 {
		m.lapsRemaining--
	}
	if m.lapsRemaining > 0 {
		return false
	}
	m.FinishRun()
	return true
}

func (m *Machine) FinishRun() {
	m.runsCompleted++
	m.state = Finished
	m.lapsRemaining = 0
}

func (m *Machine) ResetToIdle(laps int) {
	m.ApplyLapValue(laps)
	m.state = Idle
}

func (m *Machine) SetRunsCompleted(n int) { m.runsCompleted = max(0, n) }

func (m *Machine) RunsCompleted() int { return m.runsCompleted }

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:         m.state,
		LapsTarget:    m.lapsTarget,
		LapsRemaining: m.lapsRemaining,
		RunsCompleted: m.runsCompleted,
	}
}
