package factory

import (
	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/automoto/illuyanka/timing"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreatePlayer(ecs *ecs.ECS, pos components.Vector) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	obj := spatial.NewBody(pos, cfg.Player.Radius, "character", tags.ResolvPlayer)
	obj.Data = player
	data := components.ObjectData{Object: obj}
	components.Object.SetValue(player, data)
	addToSpace(ecs.World, data)

	components.Player.SetValue(player, components.PlayerData{
		Target:          donburi.Null,
		OldTarget:       donburi.Null,
		CanMove:         true,
		CanChangeTarget: true,
		HitThisSwing:    map[donburi.Entity]bool{},
		DashCooldown:    timing.ReadyCooldown(),
	})
	components.Transform.SetValue(player, components.TransformData{
		Position: pos,
		Facing:   components.Vector{X: 0, Y: 1},
	})
	components.Health.SetValue(player, components.NewHealth(cfg.Player.MaxHealth))
	components.Animator.SetValue(player, components.NewAnimator())

	var voice components.VoiceData
	if rt := runtimeOf(ecs.World); rt != nil {
		voice.Dispatcher = rt.Sound
	}
	components.Voice.SetValue(player, voice)

	return player
}
