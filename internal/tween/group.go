package tween

// Group collects the handles of one logical animation so that it can be
// cancelled as a unit.
type Group struct {
	pool    *Pool
	handles []Handle
}

// NewGroup returns an empty group bound to p.
func (p *Pool) NewGroup() *Group {
	return &Group{pool: p}
}

// Start starts s in the pool and records its handle.
func (g *Group) Start(s Spec) Handle {
	h := g.pool.Start(s)
	if len(g.handles) == cap(g.handles) {
		g.prune()
	}
	g.handles = append(g.handles, h)
	return h
}

// CancelAll cancels every tween the group started.
func (g *Group) CancelAll() {
	for _, h := range g.handles {
		g.pool.Cancel(h)
	}
	g.handles = g.handles[:0]
}

// Active is the number of the group's tweens still running.
func (g *Group) Active() int {
	g.prune()
	return len(g.handles)
}

// prune drops finished handles so long-lived groups do not grow.
func (g *Group) prune() {
	kept := g.handles[:0]
	for _, h := range g.handles {
		if g.pool.Active(h) {
			kept = append(kept, h)
		}
	}
	g.handles = kept
}
