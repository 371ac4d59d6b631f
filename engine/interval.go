package engine

import (
	"time"

	"github.com/lixenwraith/spacejam/vmath"
)

// IntervalTaskName is the task that advances all playing intervals
const IntervalTaskName = "ivalLoop"

// Interval moves a node linearly between two positions over a fixed duration
// Fluid intervals move the node with SetFluidPos so collisions are swept along the path
type Interval struct {
	node     *Node
	duration time.Duration
	start    vmath.Vec3F
	end      vmath.Vec3F
	fluid    bool

	elapsed  time.Duration
	playing  bool
	finished bool
}

// PosInterval creates a stopped interval, call Start to play it
func PosInterval(node *Node, duration time.Duration, end, start vmath.Vec3F, fluid bool) *Interval {
	return &Interval{
		node:     node,
		duration: duration,
		start:    start,
		end:      end,
		fluid:    fluid,
	}
}

func (iv *Interval) Node() *Node             { return iv.node }
func (iv *Interval) Duration() time.Duration { return iv.duration }
func (iv *Interval) Elapsed() time.Duration  { return iv.elapsed }
func (iv *Interval) StartPos() vmath.Vec3F   { return iv.start }
func (iv *Interval) EndPos() vmath.Vec3F     { return iv.end }
func (iv *Interval) Fluid() bool             { return iv.fluid }
func (iv *Interval) IsPlaying() bool         { return iv.playing }

// Finished reports whether the interval ran to its end position
func (iv *Interval) Finished() bool { return iv.finished }

// Stop halts playback where it is, the interval stays at its current position
func (iv *Interval) Stop() {
	iv.playing = false
}

// Finish jumps to the end position and stops
func (iv *Interval) Finish() {
	iv.elapsed = iv.duration
	iv.apply(iv.end)
	iv.playing = false
	iv.finished = true
}

// Progress returns elapsed/duration in [0,1]
func (iv *Interval) Progress() float64 {
	if iv.duration <= 0 {
		return 1
	}
	return vmath.Clamp(float64(iv.elapsed)/float64(iv.duration), 0, 1)
}

// advance moves the node by dt, returns false once the interval stopped playing
func (iv *Interval) advance(dt time.Duration) bool {
	if !iv.playing {
		return false
	}
	iv.elapsed += dt
	if iv.elapsed >= iv.duration {
		iv.Finish()
		return false
	}
	iv.apply(vmath.V3FLerp(iv.start, iv.end, iv.Progress()))
	return true
}

func (iv *Interval) apply(p vmath.Vec3F) {
	if iv.fluid {
		iv.node.SetFluidPos(p)
	} else {
		iv.node.SetPos(p)
	}
}

// IntervalManager advances started intervals once per frame
type IntervalManager struct {
	active []*Interval
}

func NewIntervalManager() *IntervalManager {
	return &IntervalManager{}
}

// Start places the node at the start position and begins playback
func (m *IntervalManager) Start(iv *Interval) {
	iv.elapsed = 0
	iv.finished = false
	iv.node.SetPos(iv.start)
	iv.playing = true
	m.active = append(m.active, iv)
}

// Active returns the number of intervals still tracked by the manager
func (m *IntervalManager) Active() int { return len(m.active) }

// Step advances every playing interval and drops the ones that stopped
func (m *IntervalManager) Step(dt time.Duration) {
	live := m.active[:0]
	for _, iv := range m.active {
		if iv.advance(dt) {
			live = append(live, iv)
		}
	}
	for i := len(live); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = live
}

// Task adapts the manager to the task manager contract
func (m *IntervalManager) Task() TaskFunc {
	return func(t *Task) TaskStatus {
		m.Step(t.Dt)
		return TaskCont
	}
}
