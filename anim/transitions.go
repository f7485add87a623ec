package anim

import "time"

// Transition is one clip fading out of a transition set.
type Transition struct {
	Node          NodeIndex
	CurrentWeight float32
	DeclinePerSec float32
}

// Transitions is the crossfade bookkeeping for one player: the main clip plus
// the clips still fading out of it.
type Transitions struct {
	main      NodeIndex
	hasMain   bool
	lastBlend time.Duration
	fading    []Transition
}

func NewTransitions() *Transitions {
	return &Transitions{}
}

// Main returns the clip the set is blending towards.
func (t *Transitions) Main() (NodeIndex, bool) {
	return t.main, t.hasMain
}

// LastBlend returns the blend duration of the most recent Play.
func (t *Transitions) LastBlend() time.Duration {
	return t.lastBlend
}

// Fading returns a copy of the in-flight fades, oldest first.
func (t *Transitions) Fading() []Transition {
	return append([]Transition(nil), t.fading...)
}

// Play restarts n on p and makes it the main clip. The previous main clip, if
// it is still playing, fades out over blend; a zero blend cuts it immediately.
func (t *Transitions) Play(p *Player, n NodeIndex, blend time.Duration) *ActiveAnimation {
	if t.hasMain && t.main != n {
		if old, ok := p.Animation(t.main); ok && !old.IsPaused() {
			if blend > 0 {
				t.fading = append(t.fading, Transition{
					Node:          t.main,
					CurrentWeight: old.Weight(),
					DeclinePerSec: float32(1 / blend.Seconds()),
				})
			} else {
				p.Stop(t.main)
			}
		}
	}

	kept := t.fading[:0]
	for _, tr := range t.fading {
		if tr.Node != n {
			kept = append(kept, tr)
		}
	}
	t.fading = kept

	t.main = n
	t.hasMain = true
	t.lastBlend = blend
	return p.Start(n)
}

// Handoff abandons the set's in-flight fades, stopping those clips on p, and
// returns a fresh set whose main clip is whatever this set was playing.
func (t *Transitions) Handoff(p *Player) *Transitions {
	for _, tr := range t.fading {
		p.Stop(tr.Node)
	}
	t.fading = nil
	return &Transitions{main: t.main, hasMain: t.hasMain}
}

// Advance declines fading weights by dt seconds, gives the main clip the
// remaining weight, and stops clips whose weight reached zero.
func (t *Transitions) Advance(p *Player, dt float32) {
	remaining := float32(1)
	for i := len(t.fading) - 1; i >= 0; i-- {
		tr := &t.fading[i]
		tr.CurrentWeight = max(0, tr.CurrentWeight-tr.DeclinePerSec*dt)
		a, ok := p.Animation(tr.Node)
		if !ok {
			continue
		}
		a.SetWeight(tr.CurrentWeight * remaining)
		remaining -= a.Weight()
	}
	if t.hasMain {
		if a, ok := p.Animation(t.main); ok {
			a.SetWeight(remaining)
		}
	}

	kept := t.fading[:0]
	for _, tr := range t.fading {
		if tr.CurrentWeight > 0 {
			kept = append(kept, tr)
			continue
		}
		p.Stop(tr.Node)
	}
	t.fading = kept
}
