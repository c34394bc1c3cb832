package ability

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptDescriptor describes an ability implemented in tengo. The script
// defines a top-level map named `ability` whose optional entries are
//
//	on_input(engine, state, intent, ctx) -> bool
//	on_tick(engine, state, ctx)
//	on_land(engine, state, ctx)
//	on_equip(engine, state, config)
//	on_unequip(engine, state)
//
// `state` is a map private to the instance that survives between calls.
type ScriptDescriptor struct {
	ID            string
	Name          string
	Slot          Slot
	Priority      int
	Prerequisites []string
	Excludes      []string
	Defaults      Config
	Source        []byte
}

const scriptDispatch = `
__hook := ability[__phase]
if is_callable(__hook) {
	if __phase == "on_input" {
		__result = __hook(__engine, __state, __intent, __ctx)
	} else if __phase == "on_equip" {
		__hook(__engine, __state, __config)
	} else if __phase == "on_unequip" {
		__hook(__engine, __state)
	} else {
		__hook(__engine, __state, __ctx)
	}
}
`

// Descriptor compiles the script once and returns a catalog entry whose
// factory hands every instance its own clone of the compiled program.
func (s ScriptDescriptor) Descriptor() (Descriptor, error) {
	compiled, err := compileScript(s.Source)
	if err != nil {
		return Descriptor{}, fmt.Errorf("ability: compile script %q: %w", s.ID, err)
	}
	id := s.ID
	return Descriptor{
		ID:            s.ID,
		Name:          s.Name,
		Slot:          s.Slot,
		Priority:      s.Priority,
		Prerequisites: s.Prerequisites,
		Excludes:      s.Excludes,
		Defaults:      s.Defaults,
		New: func(Config) Ability {
			return &Script{
				id:       id,
				compiled: compiled.Clone(),
				state:    &tengo.Map{Value: map[string]tengo.Object{}},
			}
		},
	}, nil
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__intent", "")
	_ = script.Add("__ctx", map[string]any{})
	_ = script.Add("__config", map[string]any{})
	_ = script.Add("__result", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// Script is a live tengo ability instance.
type Script struct {
	id       string
	compiled *tengo.Compiled
	state    *tengo.Map
	caps     Capabilities
}

func (s *Script) Equip(caps Capabilities, cfg Config) {
	s.caps = caps
	conf, err := tengo.FromInterface(map[string]any(cfg))
	if err != nil {
		log.Printf("ability: script %s config: %v", s.id, err)
		conf = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	s.run("on_equip", caps, func(c *tengo.Compiled) error {
		return c.Set("__config", conf)
	})
}

func (s *Script) Unequip() {
	if s.caps != nil {
		s.run("on_unequip", s.caps, nil)
	}
	s.caps = nil
}

func (s *Script) HandleInput(intent Intent, ctx Context, caps Capabilities) bool {
	ok := s.run("on_input", caps, func(c *tengo.Compiled) error {
		if err := c.Set("__intent", intent.String()); err != nil {
			return err
		}
		return c.Set("__ctx", contextObject(ctx))
	})
	if !ok {
		return false
	}
	return s.compiled.Get("__result").Bool()
}

func (s *Script) Tick(ctx Context, caps Capabilities) {
	s.run("on_tick", caps, func(c *tengo.Compiled) error {
		return c.Set("__ctx", contextObject(ctx))
	})
}

func (s *Script) Land(ctx Context, caps Capabilities) {
	s.run("on_land", caps, func(c *tengo.Compiled) error {
		return c.Set("__ctx", contextObject(ctx))
	})
}

// run executes one hook. Runtime errors are logged and reported as false.
func (s *Script) run(phase string, caps Capabilities, bind func(*tengo.Compiled) error) bool {
	c := s.compiled
	err := c.Set("__phase", phase)
	if err == nil {
		err = c.Set("__engine", scriptEngine(caps))
	}
	if err == nil {
		err = c.Set("__state", s.state)
	}
	if err == nil {
		err = c.Set("__result", false)
	}
	if err == nil && bind != nil {
		err = bind(c)
	}
	if err == nil {
		err = c.Run()
	}
	if err != nil {
		log.Printf("ability: script %s %s: %v", s.id, phase, err)
		return false
	}
	return true
}

// State exposes the per-instance script state, mainly for tests.
func (s *Script) State() map[string]any {
	out := make(map[string]any, len(s.state.Value))
	for k, v := range s.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func contextObject(ctx Context) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"now_ms":           &tengo.Float{Value: ctx.NowMs},
		"delta_ms":         &tengo.Float{Value: ctx.DeltaMs},
		"grounded":         boolObject(ctx.Grounded),
		"velocity_y":       &tengo.Float{Value: ctx.VelocityY},
		"is_dashing":       boolObject(ctx.IsDashing),
		"jump_height":      &tengo.Float{Value: ctx.JumpHeight},
		"dash_available":   boolObject(ctx.DashAvailable),
		"is_hovering":      boolObject(ctx.IsHovering),
		"gravity_inverted": boolObject(ctx.GravityInverted),
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func scriptEngine(caps Capabilities) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["request_jump"] = &tengo.UserFunction{Name: "request_jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(caps.RequestJump(argFloat(args, 0))), nil
	}}

	values["start_dash"] = &tengo.UserFunction{Name: "start_dash", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		invincible := len(args) > 2 && !args[2].IsFalsy()
		return boolObject(caps.StartDash(argFloat(args, 0), argFloat(args, 1), invincible)), nil
	}}

	values["add_impulse"] = &tengo.UserFunction{Name: "add_impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		caps.AddHorizontalImpulse(argFloat(args, 0), argFloat(args, 1))
		return tengo.TrueValue, nil
	}}

	values["set_vertical_velocity"] = &tengo.UserFunction{Name: "set_vertical_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		caps.SetVerticalVelocity(argFloat(args, 0))
		return tengo.TrueValue, nil
	}}

	values["set_hover_mode"] = &tengo.UserFunction{Name: "set_hover_mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		caps.SetHoverMode(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["set_hover_target"] = &tengo.UserFunction{Name: "set_hover_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		caps.SetHoverTarget(argFloat(args, 0), argFloat(args, 1), argFloat(args, 2))
		return tengo.TrueValue, nil
	}}

	values["flip_gravity"] = &tengo.UserFunction{Name: "flip_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if caps == nil {
			return tengo.FalseValue, nil
		}
		caps.FlipGravity()
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("ability: script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func argFloat(args []tengo.Object, i int) float64 {
	if i >= len(args) {
		return 0
	}
	f, _ := tengo.ToFloat64(args[i])
	return f
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
