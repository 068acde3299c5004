// Package drone owns the actuator command state machine and the boundary
// to the physical drone: a two-level vertical axis, a free heading axis,
// and a confirmation gate on the single transition that moves the
// aircraft toward the ground while it is flying.
package drone

// Command is the closed set of actuator commands the machine can emit.
// Every intent maps totally onto one of these; there is no runtime
// string-to-behavior lookup.
type Command string

const (
	// CommandTakeoff raises the drone from GROUNDED to AIRBORNE.
	CommandTakeoff Command = "takeoff"

	// CommandLand lowers the drone from AIRBORNE to GROUNDED.
	// The only command behind the confirmation gate.
	CommandLand Command = "land"

	// CommandRotate turns the drone by the configured heading delta.
	CommandRotate Command = "rotate"

	// CommandHold leaves the actuator untouched while airborne
	// (idempotent ascend, or a declined landing).
	CommandHold Command = "hold"

	// CommandGroundedHold is the no-op emitted when a descend intent
	// arrives while already grounded. Distinct from CommandLand so the
	// log never shows a landing that moved nothing.
	CommandGroundedHold Command = "grounded-hold"
)

// Valid reports whether c is one of the closed command set.
func (c Command) Valid() bool {
	switch c {
	case CommandTakeoff, CommandLand, CommandRotate, CommandHold, CommandGroundedHold:
		return true
	}
	return false
}

// Actuates reports whether the command physically moves the drone.
func (c Command) Actuates() bool {
	switch c {
	case CommandTakeoff, CommandLand, CommandRotate:
		return true
	}
	return false
}

// PartnerStep returns the step name used by the partner drone bridge.
// The bridge protocol predates this system and uses its own vocabulary.
func (c Command) PartnerStep() string {
	switch c {
	case CommandTakeoff:
		return "TAKEOFF"
	case CommandLand:
		return "LAND"
	case CommandRotate:
		return "YAW RIGHT"
	default:
		return "maintain"
	}
}
