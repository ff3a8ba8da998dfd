// Package sim runs the force-directed layout behind the interactive view.
//
// The simulation follows the d3-force model: velocity Verlet integration
// cooled by an alpha value that decays towards a target on every tick.
// Forces applied per tick:
//
//   - link: springs of rest length LinkDistance between linked nodes
//   - charge: pairwise repulsion (direct summation)
//   - collide: treats nodes as discs of radius CollideRadius and pushes
//     overlapping discs apart
//   - gravity: weak pull of every node towards the world origin
//   - center: shifts the whole layout so its mean sits at the center point
//
// Pinned nodes (see graph.Node.Pin) are placed at their pin every tick and
// keep zero velocity.
//
// A Simulation is driven by its caller, one Step per frame. It is not safe
// for concurrent use: the render loop owns it together with the data set.
package sim

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// Config holds the simulation parameters.
type Config struct {
	AlphaDecay     float64 `toml:"alpha_decay"`
	AlphaMin       float64 `toml:"alpha_min"`
	VelocityDecay  float64 `toml:"velocity_decay"`
	LinkDistance   float64 `toml:"link_distance"`
	Charge         float64 `toml:"charge"`
	CollideRadius  float64 `toml:"collide_radius"`
	Gravity        float64 `toml:"gravity"`
	CenterStrength float64 `toml:"center_strength"`
	Seed           uint64  `toml:"seed"`
}

// DefaultConfig returns the standard parameters.
func DefaultConfig() Config {
	return Config{
		AlphaDecay:     0.005,
		AlphaMin:       0.001,
		VelocityDecay:  0.4,
		LinkDistance:   30,
		Charge:         -10,
		CollideRadius:  10,
		Gravity:        0.01,
		CenterStrength: 0.9,
		Seed:           1,
	}
}

const (
	initialRadius = 10.0
	distanceMin2  = 1.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation is a force layout over a live data set.
type Simulation struct {
	cfg         Config
	data        *graph.Data
	alpha       float64
	alphaTarget float64
	center      view.Point
	stopped     bool
	rng         *rand.Rand

	linkStrength []float64
	linkBias     []float64
}

// New creates a simulation over d and places every node on a phyllotaxis
// spiral around the origin. A zero Config selects DefaultConfig.
func New(d *graph.Data, cfg Config) *Simulation {
	s := &Simulation{
		cfg:   withDefaults(cfg),
		alpha: 1,
	}
	s.rng = rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed^0x9e3779b97f4a7c15))
	s.SetData(d)
	return s
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg == (Config{}) {
		return def
	}
	if cfg.AlphaDecay <= 0 {
		cfg.AlphaDecay = def.AlphaDecay
	}
	if cfg.AlphaMin <= 0 {
		cfg.AlphaMin = def.AlphaMin
	}
	if cfg.VelocityDecay <= 0 || cfg.VelocityDecay >= 1 {
		cfg.VelocityDecay = def.VelocityDecay
	}
	if cfg.LinkDistance <= 0 {
		cfg.LinkDistance = def.LinkDistance
	}
	if cfg.Charge == 0 {
		cfg.Charge = def.Charge
	}
	if cfg.CollideRadius < 0 {
		cfg.CollideRadius = 0
	}
	if cfg.Gravity < 0 {
		cfg.Gravity = 0
	}
	if cfg.CenterStrength < 0 {
		cfg.CenterStrength = 0
	}
	return cfg
}

// SetData swaps the data set, re-seeds node positions and restarts the
// simulation at full heat.
func (s *Simulation) SetData(d *graph.Data) {
	s.data = d
	s.alpha = 1
	s.stopped = false
	for i, n := range d.NodeList() {
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		n.X, n.Y = r*math.Cos(a), r*math.Sin(a)
		n.VX, n.VY = 0, 0
	}
	s.initLinks()
}

// Data returns the live data set.
func (s *Simulation) Data() *graph.Data {
	return s.data
}

// SetCenter moves the point the layout is centered on.
func (s *Simulation) SetCenter(p view.Point) {
	s.center = p
}

// Alpha returns the current heat.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaTarget returns the heat the simulation is moving towards.
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// SetAlpha sets the current heat.
func (s *Simulation) SetAlpha(a float64) {
	s.alpha = math.Max(0, math.Min(1, a))
}

// Reheat sets the alpha target and resumes ticking.
func (s *Simulation) Reheat(target float64) {
	s.alphaTarget = math.Max(0, math.Min(1, target))
	s.stopped = false
}

// Cool lets the simulation settle.
func (s *Simulation) Cool() {
	s.alphaTarget = 0
}

// Active reports whether Step still moves nodes. A held alpha target
// keeps a cooled simulation running, so a drag after settling still ticks.
func (s *Simulation) Active() bool {
	return !s.stopped && (s.alpha >= s.cfg.AlphaMin || s.alphaTarget >= s.cfg.AlphaMin)
}

// Stop halts the simulation until the next Reheat or SetData.
func (s *Simulation) Stop() {
	s.stopped = true
}

// Step runs one tick if the simulation is active and reports whether it did.
func (s *Simulation) Step() bool {
	if !s.Active() {
		return false
	}
	s.Tick()
	return true
}

// Run ticks n times regardless of heat.
func (s *Simulation) Run(n int) {
	for range n {
		s.Tick()
	}
}

// Tick advances the layout by one iteration.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	nodes := s.data.NodeList()
	s.forceLink()
	s.forceCharge(nodes)
	s.forceCollide(nodes)
	s.forceGravity(nodes)
	s.forceCenter(nodes)

	keep := 1 - s.cfg.VelocityDecay
	for _, n := range nodes {
		if n.Pinned {
			n.X, n.Y = n.FX, n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
}
