package sim

import (
	"math"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}

// initLinks computes per-link strength and bias from node degrees, so
// springs attached to hubs are weaker and move the lighter end more.
func (s *Simulation) initLinks() {
	links := s.data.LinkList()
	count := make(map[int]int, s.data.Len())
	for _, l := range links {
		count[l.Source.ID]++
		count[l.Target.ID]++
	}
	s.linkStrength = make([]float64, len(links))
	s.linkBias = make([]float64, len(links))
	for i, l := range links {
		cs, ct := count[l.Source.ID], count[l.Target.ID]
		s.linkStrength[i] = 1 / float64(min(cs, ct))
		s.linkBias[i] = float64(cs) / float64(cs+ct)
	}
}

func (s *Simulation) forceLink() {
	for i, l := range s.data.LinkList() {
		src, dst := l.Source, l.Target
		x := dst.X + dst.VX - src.X - src.VX
		y := dst.Y + dst.VY - src.Y - src.VY
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - s.cfg.LinkDistance) / d * s.alpha * s.linkStrength[i]
		x *= k
		y *= k
		b := s.linkBias[i]
		dst.VX -= x * b
		dst.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}

func (s *Simulation) forceCharge(nodes []*graph.Node) {
	strength := s.cfg.Charge * s.alpha
	for i, a := range nodes {
		for j, b := range nodes {
			if i == j {
				continue
			}
			x, y := b.X-a.X, b.Y-a.Y
			if x == 0 {
				x = s.jiggle()
			}
			if y == 0 {
				y = s.jiggle()
			}
			l := x*x + y*y
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			a.VX += x * strength / l
			a.VY += y * strength / l
		}
	}
}

func (s *Simulation) forceCollide(nodes []*graph.Node) {
	r := s.cfg.CollideRadius
	if r <= 0 {
		return
	}
	rr := 2 * r
	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			x := a.X + a.VX - b.X - b.VX
			y := a.Y + a.VY - b.Y - b.VY
			l := x*x + y*y
			if l >= rr*rr {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			l = math.Sqrt(l)
			k := (rr - l) / l
			x *= k
			y *= k
			// equal radii split the correction evenly
			a.VX += x * 0.5
			a.VY += y * 0.5
			b.VX -= x * 0.5
			b.VY -= y * 0.5
		}
	}
}

func (s *Simulation) forceGravity(nodes []*graph.Node) {
	k := s.cfg.Gravity * s.alpha
	if k == 0 {
		return
	}
	for _, n := range nodes {
		n.VX -= n.X * k
		n.VY -= n.Y * k
	}
}

// forceCenter translates every node so the layout's mean moves towards
// the center point. It does not touch velocities.
func (s *Simulation) forceCenter(nodes []*graph.Node) {
	if len(nodes) == 0 || s.cfg.CenterStrength == 0 {
		return
	}
	var sx, sy float64
	for _, n := range nodes {
		sx += n.X
		sy += n.Y
	}
	n := float64(len(nodes))
	sx = (sx/n - s.center.X) * s.cfg.CenterStrength
	sy = (sy/n - s.center.Y) * s.cfg.CenterStrength
	for _, node := range nodes {
		node.X -= sx
		node.Y -= sy
	}
}
