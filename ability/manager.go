package ability

import (
	"fmt"
	"slices"
)

// Limits caps how many abilities may be equipped per slot.
type Limits map[Slot]int

func DefaultLimits() Limits {
	return Limits{SlotMovement: 2, SlotUtility: 2, SlotUltimate: 1}
}

type equipped struct {
	desc Descriptor
	inst Ability
	cfg  Config
}

// Manager equips abilities from a catalog and routes hooks to them.
type Manager struct {
	catalog   *Catalog
	caps      Capabilities
	limits    Limits
	equipped  map[string]*equipped
	overrides map[string]Config

	// cached priority order, rebuilt on equip/unequip
	order []*equipped
	// ids in the order they were equipped
	sequence []string
	lastErr  string
}

// NewManager builds a manager. Limits absent from limits keep their default;
// negative limits clamp to 0.
func NewManager(catalog *Catalog, caps Capabilities, limits Limits) (*Manager, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if caps == nil {
		return nil, ErrNilCapabilities
	}
	merged := DefaultLimits()
	for slot, n := range limits {
		merged[slot] = max(0, n)
	}
	return &Manager{
		catalog:   catalog,
		caps:      caps,
		limits:    merged,
		equipped:  map[string]*equipped{},
		overrides: map[string]Config{},
	}, nil
}

func (m *Manager) Catalog() *Catalog { return m.catalog }

func (m *Manager) Limit(slot Slot) int { return m.limits[slot] }

// LastError is the reason the most recent failed Equip gave, or "" after a
// successful one.
func (m *Manager) LastError() string { return m.lastErr }

// Configure sets config overrides applied on top of the descriptor defaults
// for subsequent equips of id.
func (m *Manager) Configure(id string, cfg Config) {
	if len(cfg) == 0 {
		delete(m.overrides, id)
		return
	}
	m.overrides[id] = cfg
}

// ConfigFor resolves the config an equip of id would receive.
func (m *Manager) ConfigFor(id string) Config {
	d, ok := m.catalog.Lookup(id)
	if !ok {
		return Config{}
	}
	return d.Defaults.Merge(m.overrides[id])
}

func (m *Manager) CountInSlot(slot Slot) int {
	n := 0
	for _, e := range m.equipped {
		if e.desc.Slot == slot {
			n++
		}
	}
	return n
}

func (m *Manager) IsEquipped(id string) bool {
	_, ok := m.equipped[id]
	return ok
}

func (m *Manager) Equip(id string) bool {
	d, ok := m.catalog.Lookup(id)
	if !ok {
		return m.fail("unknown ability %s", id)
	}
	if m.IsEquipped(id) {
		m.lastErr = ""
		return true
	}
	if m.CountInSlot(d.Slot) >= m.limits[d.Slot] {
		return m.fail("no free %s slots", d.Slot)
	}
	for _, pre := range d.Prerequisites {
		if !m.IsEquipped(pre) {
			return m.fail("missing prerequisites for %s", id)
		}
	}
	for _, ex := range d.Excludes {
		if m.IsEquipped(ex) {
			return m.fail("cannot equip %s with excluded ability present", id)
		}
	}

	cfg := m.ConfigFor(id)
	inst := d.New(cfg)
	if inst == nil {
		return m.fail("ability %s factory returned nothing", id)
	}
	if eq, ok := inst.(Equipper); ok {
		eq.Equip(m.caps, cfg)
	}
	m.equipped[id] = &equipped{desc: d, inst: inst, cfg: cfg}
	m.sequence = append(m.sequence, id)
	m.reorder()
	m.lastErr = ""
	return true
}

func (m *Manager) fail(format string, args ...any) bool {
	m.lastErr = fmt.Sprintf(format, args...)
	return false
}

func (m *Manager) Unequip(id string) bool {
	e, ok := m.equipped[id]
	if !ok {
		return true
	}
	if u, ok := e.inst.(Unequipper); ok {
		u.Unequip()
	}
	delete(m.equipped, id)
	m.sequence = slices.DeleteFunc(m.sequence, func(s string) bool { return s == id })
	m.reorder()
	return true
}

// Reload replaces every equipped instance with a fresh one built from the
// current config, in equip order. It returns the ids that could
// not be re-equipped.
func (m *Manager) Reload() []string {
	ids := slices.Clone(m.sequence)
	m.Clear()
	var failed []string
	for _, id := range ids {
		if !m.Equip(id) {
			failed = append(failed, id)
		}
	}
	return failed
}

// Clear unequips everything, highest priority first.
func (m *Manager) Clear() {
	for _, id := range m.Equipped() {
		m.Unequip(id)
	}
}

func (m *Manager) reorder() {
	m.order = m.order[:0]
	for _, e := range m.equipped {
		m.order = append(m.order, e)
	}
	slices.SortFunc(m.order, func(a, b *equipped) int {
		if a.desc.Priority != b.desc.Priority {
			return b.desc.Priority - a.desc.Priority
		}
		if a.desc.ID < b.desc.ID {
			return -1
		}
		if a.desc.ID > b.desc.ID {
			return 1
		}
		return 0
	})
}

// Equipped lists equipped ids by descending priority, ties by id.
func (m *Manager) Equipped() []string {
	out := make([]string, 0, len(m.order))
	for _, e := range m.order {
		out = append(out, e.desc.ID)
	}
	return out
}

// Available lists every catalog entry not currently equipped.
func (m *Manager) Available() []Descriptor {
	var out []Descriptor
	for _, d := range m.catalog.Descriptors() {
		if !m.IsEquipped(d.ID) {
			out = append(out, d)
		}
	}
	return out
}

// Instance returns the live instance for id.
func (m *Manager) Instance(id string) (Ability, bool) {
	e, ok := m.equipped[id]
	if !ok {
		return nil, false
	}
	return e.inst, true
}

// live reports whether e is still the equipped entry for its id. Snapshot
// entries go stale when a hook unequips or re-equips during dispatch.
func (m *Manager) live(e *equipped) bool {
	cur, ok := m.equipped[e.desc.ID]
	return ok && cur == e
}

// HandleInput offers the intent to equipped abilities by descending priority
// and stops at the first one that consumes it.
func (m *Manager) HandleInput(intent Intent, ctx Context) bool {
	// a handler may unequip abilities; iterate a snapshot
	for _, e := range slices.Clone(m.order) {
		if !m.live(e) {
			continue
		}
		h, ok := e.inst.(InputHandler)
		if !ok {
			continue
		}
		if h.HandleInput(intent, ctx, m.caps) {
			return true
		}
	}
	return false
}

func (m *Manager) Tick(ctx Context) {
	for _, e := range slices.Clone(m.order) {
		if !m.live(e) {
			continue
		}
		if t, ok := e.inst.(Ticker); ok {
			t.Tick(ctx, m.caps)
		}
	}
}

// Land notifies every equipped ability that the body just touched ground.
// Callers invoke it only on the airborne to grounded edge.
func (m *Manager) Land(ctx Context) {
	for _, e := range slices.Clone(m.order) {
		if !m.live(e) {
			continue
		}
		if l, ok := e.inst.(Lander); ok {
			l.Land(ctx, m.caps)
		}
	}
}
