package systems

import (
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// TakeDamage is the single damage entry point for every actor. Enemies react
// through their archetype behaviour; a killing blow starts the death sequence.
func TakeDamage(ecs *ecs.ECS, e *donburi.Entry, amount float64) {
	if e == nil || !e.Valid() || !e.HasComponent(components.Health) {
		return
	}
	hp := components.Health.Get(e)
	if hp.Dead || amount <= 0 {
		return
	}
	died := hp.TakeDamage(amount)

	logger(ecs.World).Debug("damage taken",
		entityField(e),
		zap.Float64("amount", amount),
		zap.Float64("health", hp.Current))

	switch {
	case e.HasComponent(tags.Enemy):
		behaviorFor(e).OnDamaged(ecs, e, amount)
		if died {
			die(ecs, e)
		}
	case e.HasComponent(tags.Player):
		playSound(e, cfg.SoundPlayerHit, sound.RandomIndex)
		if died {
			playerDied(ecs, e)
		}
	}
}

// Heal restores health. Dead actors stay dead.
func Heal(ecs *ecs.ECS, e *donburi.Entry, amount float64) {
	if e == nil || !e.Valid() || !e.HasComponent(components.Health) {
		return
	}
	components.Health.Get(e).Heal(amount)
}

// playerDied locks the player out of every action. The body stays in the
// arena so enemies simply lose their target.
func playerDied(ecs *ecs.ECS, e *donburi.Entry) {
	player := components.Player.Get(e)
	player.CanMove = false
	player.CanChangeTarget = false
	player.IsAttacking = true
	player.Dashing = false

	if rt := runtimeOf(ecs.World); rt != nil {
		rt.Scheduler.CancelOwner(e.Entity())
	}
	endDash(ecs, e, false)
	if e.HasComponent(components.Approach) {
		donburi.Remove[components.ApproachData](e, components.Approach)
	}
	ClearTarget(ecs, e)

	components.Animator.Get(e).SetBool(cfg.ParamIsDead, true)
	playSound(e, cfg.SoundPlayerDeath, sound.RandomIndex)
	logger(ecs.World).Info("player died", entityField(e))
}

// playSound asks the actor's voice for a cue. Enemy voices are positional.
func playSound(e *donburi.Entry, id cfg.SoundID, index int) {
	if !e.HasComponent(components.Voice) {
		return
	}
	voice := components.Voice.Get(e)
	if voice.Dispatcher == nil {
		return
	}
	voice.Dispatcher.Play(sound.Request{
		ID:        id,
		Archetype: voice.Archetype,
		Index:     index,
		Position:  positionOf(e),
		Spatial:   voice.Archetype != "",
		Bus:       cfg.BusSFX,
	})
}

// playWorldSound emits a positional cue that belongs to no actor.
func playWorldSound(w donburi.World, id cfg.SoundID, pos components.Vector) {
	rt := runtimeOf(w)
	if rt == nil || rt.Sound == nil {
		return
	}
	rt.Sound.Play(sound.Request{
		ID:       id,
		Index:    sound.RandomIndex,
		Position: pos,
		Spatial:  true,
		Bus:      cfg.BusSFX,
	})
}
