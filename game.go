package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/jamble/body"
	"github.com/milk9111/jamble/course"
	"github.com/milk9111/jamble/ecs/component"
	"github.com/milk9111/jamble/geom"
	"github.com/milk9111/jamble/prefabs"
	"github.com/milk9111/jamble/run"
	"github.com/milk9111/jamble/sim"
)

const hudHeight = 56

type Game struct {
	frames int

	input     *Input
	sim       *sim.Simulation
	overrides flagOverrides
	debug     bool

	runnerColor   color.Color
	pendingCourse *course.Course

	watcher *prefabs.Watcher
}

func NewGame(overrides flagOverrides, debug, watch bool) (*Game, error) {
	spec, err := prefabs.LoadTuningSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := sim.ConfigFromSpec(spec)
	if err != nil {
		return nil, err
	}
	cfg = overrides.apply(cfg)

	obstacles, err := loadCourse(cfg)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(cfg, obstacles)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:       NewInput(),
		sim:         s,
		overrides:   overrides,
		debug:       debug,
		runnerColor: runnerColor(spec),
	}

	if watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if w, err := prefabs.NewWatcher(existingDirs(dirs)...); err != nil {
			log.Printf("prefabs: watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadCourse(cfg sim.Config) (*course.Course, error) {
	spec, err := prefabs.LoadCourseSpec()
	if err != nil {
		return nil, err
	}
	return course.FromSpec(spec, cfg.Body.WorldWidth, cfg.Body.WorldHeight)
}

func runnerColor(spec *prefabs.TuningSpec) color.Color {
	if spec != nil && spec.Player.Color.Color != nil {
		return spec.Player.Color.Color
	}
	return colornames.Orange
}

func existingDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.reload()

	g.input.Update()
	if g.input.Debug {
		g.debug = !g.debug
	}
	if g.input.Reset && (g.sim.ResetAvailable() || g.sim.Idle()) {
		g.sim.Reset()
	}
	if g.input.Start {
		g.sim.Start()
	}
	if g.input.LapDelta != 0 {
		g.sim.SetLaps(g.sim.Laps() + g.input.LapDelta)
	}
	if g.input.Toggle >= 0 {
		g.toggleAbility(g.input.Toggle)
	}
	if g.input.Press {
		g.sim.Press()
	}

	if g.pendingCourse != nil && g.sim.Idle() {
		g.sim.SetCourse(g.pendingCourse)
		g.pendingCourse = nil
	}

	g.sim.Step(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) toggleAbility(idx int) {
	descs := g.sim.Abilities().Catalog().Descriptors()
	if idx >= len(descs) {
		return
	}
	id := descs[idx].ID
	if g.sim.Abilities().IsEquipped(id) {
		g.sim.Unequip(id)
		return
	}
	g.sim.Equip(id)
}

// reload applies every prefab change the watcher reported since last frame.
// Tuning is queued for the next run; a new course waits until the runner is
// idle.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Err(); err != nil {
		log.Printf("prefabs: watch: %v", err)
	}

	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}

	reloadCourse := false
	reloadTuning := false
	for _, c := range changes {
		log.Printf("prefabs: reload %s %s", c.Kind, c.Path)
		if c.Kind == prefabs.ChangeCourse {
			reloadCourse = true
		} else {
			reloadTuning = true
		}
	}

	if reloadTuning {
		spec, err := prefabs.LoadTuningSpec()
		if err != nil {
			log.Printf("prefabs: %v", err)
			return
		}
		cfg, err := sim.ConfigFromSpec(spec)
		if err != nil {
			log.Printf("prefabs: %v", err)
			return
		}
		if err := g.sim.QueueConfig(g.overrides.apply(cfg)); err != nil {
			log.Printf("prefabs: %v", err)
			return
		}
		g.runnerColor = runnerColor(spec)
		reloadCourse = true
	}

	if reloadCourse {
		c, err := loadCourse(g.sim.Config())
		if err != nil {
			log.Printf("prefabs: %v", err)
			return
		}
		g.pendingCourse = c
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.sim.Config().Body
	v := g.sim.View()

	screen.Fill(colornames.Midnightblue)
	vector.FillRect(screen, 0, hudHeight, float32(cfg.WorldWidth), float32(cfg.WorldHeight), colornames.Lightskyblue, false)
	vector.StrokeLine(screen, 0, float32(hudHeight+cfg.WorldHeight), float32(cfg.WorldWidth), float32(hudHeight+cfg.WorldHeight), 2, colornames.Darkolivegreen, false)

	for _, o := range v.Obstacles {
		drawObstacle(screen, o)
	}

	drawn := runnerRect(v, cfg)
	g.sim.Body().SetScreenBounds(drawn)
	r := drawn.Translate(v.WiggleOffset, hudHeight)
	clr := g.runnerColor
	switch {
	case v.Dead:
		clr = colornames.Crimson
	case v.Invincible:
		clr = colornames.Plum
	}
	vector.FillRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), clr, false)

	if g.debug {
		for _, o := range v.Obstacles {
			drawShape(screen, o.Shape, colornames.Red)
		}
		// View's collider predates this frame's SetScreenBounds.
		if shape, ok := g.sim.Body().CollisionShape(); ok {
			drawShape(screen, shape, colornames.Yellow)
		}
	}

	g.drawHUD(screen, v)
}

// runnerRect scales the logical bounds around the squash anchor.
func runnerRect(v sim.View, cfg body.Config) geom.Rect {
	b := v.Runner
	w := cfg.Width * v.ScaleX
	h := cfg.Height * v.ScaleY
	cx := (b.Left + b.Right) / 2
	top := b.Bottom - h
	if v.Anchor == body.AnchorTop {
		top = b.Top
	}
	return geom.NewRect(cx-w/2, top, w, h)
}

func obstacleColor(o course.Obstacle) color.Color {
	if o.Color != nil {
		return o.Color
	}
	switch o.Kind {
	case component.ObstacleBird:
		return colornames.Slategray
	case component.ObstacleTreeCeiling:
		return colornames.Seagreen
	}
	return colornames.Forestgreen
}

func drawObstacle(screen *ebiten.Image, o course.Obstacle) {
	clr := obstacleColor(o)
	b := o.Bounds.Translate(0, hudHeight)
	if o.Shape.Kind == geom.ShapeCircle {
		c := o.Shape.Circle
		vector.FillCircle(screen, float32(c.Center.X), float32(c.Center.Y+hudHeight), float32(c.Radius), clr, true)
		return
	}
	vector.FillRect(screen, float32(b.Left), float32(b.Top), float32(b.Width()), float32(b.Height()), clr, false)
}

func drawShape(screen *ebiten.Image, s geom.Shape, clr color.Color) {
	switch s.Kind {
	case geom.ShapeRect:
		r := s.Rect.Translate(0, hudHeight)
		vector.StrokeRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), 1, clr, false)
	case geom.ShapeCircle:
		c := s.Circle
		vector.StrokeCircle(screen, float32(c.Center.X), float32(c.Center.Y+hudHeight), float32(c.Radius), 1, clr, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, v sim.View) {
	status := v.Run.State.String()
	switch {
	case v.Dead && v.ResetAvailable:
		status = "dead - R to reset"
	case v.Dead:
		status = "dead"
	case v.Countdown:
		status = fmt.Sprintf("starting in %.1f", v.CountdownMs/1000)
	case v.WaitingGround:
		status = "landing..."
	case v.AwaitingStart:
		status = "ENTER to start"
	}

	laps := v.Laps
	if v.Run.State == run.Running {
		laps = v.Run.LapsRemaining
	}
	line1 := fmt.Sprintf("%s   mode: %s   laps: %d   runs: %d   edges: %d", status, v.Mode, laps, v.Run.RunsCompleted, v.Arrivals)
	line2 := "equipped: " + strings.Join(v.Equipped, ", ")
	line3 := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	if g.debug {
		b := g.sim.Body()
		line3 += fmt.Sprintf("   h: %.1f  v: %.2f  anim: %s  flipped: %v", b.JumpHeight, b.Velocity, b.AnimPhase(), v.GravityInverted)
	}
	if g.sim.HasPendingConfig() {
		line3 += "   (config queued)"
	}
	ebitenutil.DebugPrintAt(screen, line1, 4, 2)
	ebitenutil.DebugPrintAt(screen, line2, 4, 18)
	ebitenutil.DebugPrintAt(screen, line3, 4, 34)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	cfg := g.sim.Config().Body
	return cfg.WorldWidth, cfg.WorldHeight + hudHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
