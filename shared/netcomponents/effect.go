package netcomponents

import "github.com/yohamta/donburi"

// NetEffectData mirrors a transient visual cue.
type NetEffectData struct {
	Kind  int // components.EffectKind
	Scale float64
	Alpha float64
	Light float64
}

var NetEffect = donburi.NewComponentType[NetEffectData]()

func LerpNetEffect(from, to NetEffectData, t float64) *NetEffectData {
	return &NetEffectData{
		Kind:  to.Kind,
		Scale: from.Scale + (to.Scale-from.Scale)*t,
		Alpha: from.Alpha + (to.Alpha-from.Alpha)*t,
		Light: from.Light + (to.Light-from.Light)*t,
	}
}
