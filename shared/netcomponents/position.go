package netcomponents

import "github.com/yohamta/donburi"

// NetPositionData places a synced entity on the ground plane, in metres.
type NetPositionData struct {
	X, Y      float64
	Elevation float64
	FacingX   float64
	FacingY   float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// LerpNetPosition interpolates between two positions. Facing snaps to the
// newer snapshot.
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	return &NetPositionData{
		X:         from.X + (to.X-from.X)*t,
		Y:         from.Y + (to.Y-from.Y)*t,
		Elevation: from.Elevation + (to.Elevation-from.Elevation)*t,
		FacingX:   to.FacingX,
		FacingY:   to.FacingY,
	}
}
