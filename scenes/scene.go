// Package scenes holds the debug viewer's screens: a local arena and a view
// of a remote server.
package scenes

import "github.com/hajimehoshi/ebiten/v2"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type SceneChanger interface {
	ChangeScene(scene interface{})
}
