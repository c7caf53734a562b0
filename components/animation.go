package components

import (
	"github.com/yohamta/donburi"
)

// AnimatorData records the parameters the render layer feeds its animator.
// Triggers accumulate until the consumer drains them.
type AnimatorData struct {
	Enabled  bool
	Bools    map[string]bool
	Floats   map[string]float64
	Triggers []string
}

func NewAnimator() AnimatorData {
	return AnimatorData{
		Enabled: true,
		Bools:   map[string]bool{},
		Floats:  map[string]float64{},
	}
}

func (a *AnimatorData) SetBool(name string, v bool)     { a.Bools[name] = v }
func (a *AnimatorData) SetFloat(name string, v float64) { a.Floats[name] = v }
func (a *AnimatorData) SetTrigger(name string)          { a.Triggers = append(a.Triggers, name) }

func (a *AnimatorData) DrainTriggers() []string {
	t := a.Triggers
	a.Triggers = nil
	return t
}

var Animator = donburi.NewComponentType[AnimatorData]()
