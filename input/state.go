package input

// Axis is one binary movement input
type Axis uint8

const (
	AxisForward Axis = iota
	AxisStrafeLeft
	AxisStrafeRight
	AxisTurnLeft
	AxisTurnRight
	AxisTurnUp
	AxisTurnDown
	axisCount
)

var axisNames = [axisCount]string{
	AxisForward:     "forward",
	AxisStrafeLeft:  "strafe-left",
	AxisStrafeRight: "strafe-right",
	AxisTurnLeft:    "turn-left",
	AxisTurnRight:   "turn-right",
	AxisTurnUp:      "turn-up",
	AxisTurnDown:    "turn-down",
}

func (a Axis) String() string {
	if a < axisCount {
		return axisNames[a]
	}
	return "unknown"
}

// State is the set of currently held movement axes, sampled once per frame
type State struct {
	bits uint16
}

// Set marks axis held or released
func (s *State) Set(a Axis, held bool) {
	if a >= axisCount {
		return
	}
	if held {
		s.bits |= 1 << a
	} else {
		s.bits &^= 1 << a
	}
}

func (s *State) Active(a Axis) bool {
	return a < axisCount && s.bits&(1<<a) != 0
}

// Any reports whether any axis is held
func (s *State) Any() bool { return s.bits != 0 }

func (s *State) Clear() { s.bits = 0 }

// ActiveAxes lists held axes in declaration order
func (s *State) ActiveAxes() []Axis {
	var out []Axis
	for a := Axis(0); a < axisCount; a++ {
		if s.Active(a) {
			out = append(out, a)
		}
	}
	return out
}
