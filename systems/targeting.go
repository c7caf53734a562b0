package systems

import (
	"slices"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SetTarget locks the player onto enemy and moves the marker to it.
func SetTarget(ecs *ecs.ECS, p, enemy *donburi.Entry) {
	player := components.Player.Get(p)
	if old := entryOf(ecs.World, player.Target); old != nil && old.HasComponent(components.Enemy) {
		components.Enemy.Get(old).TargetMarker = false
	}
	player.Target = enemy.Entity()
	player.OldTarget = enemy.Entity()
	components.Enemy.Get(enemy).TargetMarker = true
}

// ClearTarget drops the player's target, if any.
func ClearTarget(ecs *ecs.ECS, p *donburi.Entry) {
	player := components.Player.Get(p)
	if cur := entryOf(ecs.World, player.Target); cur != nil && cur.HasComponent(components.Enemy) {
		components.Enemy.Get(cur).TargetMarker = false
	}
	player.Target = donburi.Null
	player.OldTarget = donburi.Null
}

// UpdateTargeting drops targets that died or wandered out of range and picks
// the nearest enemy when the player has none.
func UpdateTargeting(ecs *ecs.ECS) {
	p := playerEntry(ecs.World)
	if p == nil {
		return
	}
	player := components.Player.Get(p)

	if player.Target != donburi.Null {
		target := entryOf(ecs.World, player.Target)
		if target == nil || isDead(target) ||
			positionOf(p).Dist(positionOf(target)) >= cfg.Player.DetectionRange {
			ClearTarget(ecs, p)
		}
	}

	if player.Target == donburi.Null && player.CanChangeTarget && cfg.Player.AutoTarget && !isDead(p) {
		if candidates := targetCandidates(ecs.World, p); len(candidates) > 0 {
			SetTarget(ecs, p, candidates[0])
		}
	}
}

// CycleTarget moves the lock to the next enemy in range, nearest first.
func CycleTarget(ecs *ecs.ECS, p *donburi.Entry) {
	player := components.Player.Get(p)
	if !player.CanChangeTarget {
		return
	}
	candidates := targetCandidates(ecs.World, p)
	if len(candidates) == 0 {
		return
	}
	next := 0
	for i, c := range candidates {
		if c.Entity() == player.Target {
			next = (i + 1) % len(candidates)
			break
		}
	}
	SetTarget(ecs, p, candidates[next])
}

// targetCandidates lists live enemies inside detection range, nearest first.
func targetCandidates(w donburi.World, p *donburi.Entry) []*donburi.Entry {
	pos := positionOf(p)
	var out []*donburi.Entry
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if isDead(e) || e.HasComponent(components.Death) {
			return
		}
		if pos.Dist(positionOf(e)) < cfg.Player.DetectionRange {
			out = append(out, e)
		}
	})
	slices.SortStableFunc(out, func(a, b *donburi.Entry) int {
		da, db := pos.Dist(positionOf(a)), pos.Dist(positionOf(b))
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}
