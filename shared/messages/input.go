package messages

// PlayerCommand is sent by the controlling client whenever its input changes.
// Move is camera-relative; the trigger flags fire once per command.
type PlayerCommand struct {
	Sequence    uint32
	MoveX       float64
	MoveY       float64
	CameraYaw   float64
	QuickAttack bool
	HeavyAttack bool
	Dash        bool
	CycleTarget bool
}

// Merge folds a newer command into c. Movement follows the newer command,
// trigger presses accumulate until the server consumes them.
func (c PlayerCommand) Merge(next PlayerCommand) PlayerCommand {
	return PlayerCommand{
		Sequence:    next.Sequence,
		MoveX:       next.MoveX,
		MoveY:       next.MoveY,
		CameraYaw:   next.CameraYaw,
		QuickAttack: c.QuickAttack || next.QuickAttack,
		HeavyAttack: c.HeavyAttack || next.HeavyAttack,
		Dash:        c.Dash || next.Dash,
		CycleTarget: c.CycleTarget || next.CycleTarget,
	}
}
