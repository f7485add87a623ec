package anim

import "slices"

// RepeatMode controls what happens when playback reaches the end of a clip.
type RepeatMode int

const (
	RepeatNever RepeatMode = iota
	RepeatForever
)

// ActiveAnimation is the playback cursor of one clip on one player.
type ActiveAnimation struct {
	weight      float32
	speed       float32
	elapsed     float32
	seekTime    float32
	completions int
	repeat      RepeatMode
	paused      bool
	finished    bool
}

func newActiveAnimation() *ActiveAnimation {
	return &ActiveAnimation{weight: 1, speed: 1}
}

// Repeat makes the clip loop indefinitely.
func (a *ActiveAnimation) Repeat() *ActiveAnimation {
	a.repeat = RepeatForever
	return a
}

func (a *ActiveAnimation) SetRepeat(mode RepeatMode) *ActiveAnimation {
	a.repeat = mode
	return a
}

func (a *ActiveAnimation) RepeatMode() RepeatMode {
	return a.repeat
}

func (a *ActiveAnimation) Weight() float32 {
	return a.weight
}

func (a *ActiveAnimation) SetWeight(w float32) *ActiveAnimation {
	a.weight = w
	return a
}

func (a *ActiveAnimation) Speed() float32 {
	return a.speed
}

func (a *ActiveAnimation) SetSpeed(s float32) *ActiveAnimation {
	a.speed = s
	return a
}

// Elapsed is total playback time since the clip was started, ignoring wraps.
func (a *ActiveAnimation) Elapsed() float32 {
	return a.elapsed
}

// SeekTime is the position inside the clip.
func (a *ActiveAnimation) SeekTime() float32 {
	return a.seekTime
}

func (a *ActiveAnimation) Completions() int {
	return a.completions
}

func (a *ActiveAnimation) Pause() *ActiveAnimation {
	a.paused = true
	return a
}

func (a *ActiveAnimation) Resume() *ActiveAnimation {
	a.paused = false
	return a
}

func (a *ActiveAnimation) IsPaused() bool {
	return a.paused
}

func (a *ActiveAnimation) IsFinished() bool {
	return a.finished
}

// advance moves the cursor by dt seconds. A non-positive duration means the
// clip has not resolved yet; the cursor still runs but never wraps.
func (a *ActiveAnimation) advance(dt, duration float32) {
	if a.paused || a.finished {
		return
	}
	delta := dt * a.speed
	a.elapsed += delta
	a.seekTime += delta
	if duration <= 0 || a.seekTime < duration {
		return
	}

	if a.repeat == RepeatForever {
		for a.seekTime >= duration {
			a.seekTime -= duration
			a.completions++
		}
		return
	}
	a.completions++
	a.seekTime = duration
	a.finished = true
}

// Player holds the active playback cursors of one animated entity.
type Player struct {
	active map[NodeIndex]*ActiveAnimation
}

func NewPlayer() *Player {
	return &Player{active: map[NodeIndex]*ActiveAnimation{}}
}

// Start plays n from the beginning, replacing any cursor it already had.
func (p *Player) Start(n NodeIndex) *ActiveAnimation {
	if p.active == nil {
		p.active = map[NodeIndex]*ActiveAnimation{}
	}
	a := newActiveAnimation()
	p.active[n] = a
	return a
}

// Play returns the existing cursor for n, starting it only if absent.
func (p *Player) Play(n NodeIndex) *ActiveAnimation {
	if a, ok := p.active[n]; ok {
		return a
	}
	return p.Start(n)
}

func (p *Player) Stop(n NodeIndex) {
	delete(p.active, n)
}

func (p *Player) StopAll() {
	clear(p.active)
}

func (p *Player) Animation(n NodeIndex) (*ActiveAnimation, bool) {
	a, ok := p.active[n]
	return a, ok
}

func (p *Player) IsPlaying(n NodeIndex) bool {
	_, ok := p.active[n]
	return ok
}

// Playing returns the active nodes in ascending order.
func (p *Player) Playing() []NodeIndex {
	out := make([]NodeIndex, 0, len(p.active))
	for n := range p.active {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// AllFinished reports whether every active cursor has run out.
func (p *Player) AllFinished() bool {
	for _, a := range p.active {
		if !a.finished {
			return false
		}
	}
	return true
}

// Tick advances every cursor by dt seconds using clip durations from g.
func (p *Player) Tick(g *Graph, dt float32) {
	for n, a := range p.active {
		var duration float32
		if clip, ok := g.Clip(n); ok {
			duration = clip.Duration
		}
		a.advance(dt, duration)
	}
}
