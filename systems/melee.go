package systems

import (
	"math"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// AttackKind selects the player's combo family.
type AttackKind int

const (
	QuickAttack AttackKind = iota
	HeavyAttack
)

var (
	quickCombo = []string{cfg.ParamPunch, cfg.ParamKick, cfg.ParamMMAKick}
	heavyCombo = []string{cfg.ParamHeavyAttack1, cfg.ParamHeavyAttack2}

	// comboSound maps each combo clip to its attack sound index.
	comboSound = map[string]int{
		cfg.ParamPunch:        0,
		cfg.ParamKick:         1,
		cfg.ParamMMAKick:      2,
		cfg.ParamHeavyAttack1: 3,
		cfg.ParamHeavyAttack2: 4,
	}
)

var playerHooks = map[string]func(*ecs.ECS, *donburi.Entry){
	cfg.HookPerformAttack: PerformAttack,
	cfg.HookResetAttack:   ResetAttack,
	cfg.HookGetClose:      GetClose,
}

// Attack starts a random move of the given family against the current
// target. Without a target nothing happens and control is handed back.
func Attack(ecs *ecs.ECS, e *donburi.Entry, kind AttackKind) {
	player := components.Player.Get(e)
	if isDead(e) || player.IsAttacking || player.Dashing {
		return
	}
	player.CanMove = false
	player.CanChangeTarget = false

	rng := randOf(ecs.World)
	var clip string
	switch kind {
	case HeavyAttack:
		clip = heavyCombo[rng.IntN(len(heavyCombo))]
	default:
		clip = quickCombo[rng.IntN(len(quickCombo))]
	}

	target := entryOf(ecs.World, player.Target)
	if target == nil {
		player.CanMove = true
		player.CanChangeTarget = true
		return
	}

	targetPos := positionOf(target)
	faceTowards(e, targetPos)
	if kind == QuickAttack {
		dest := TargetOffset(positionOf(e), targetPos, cfg.Player.QuickStopDistance)
		moveTo(e, dest, cfg.Player.ReachTime.Seconds())
	}

	player.IsAttacking = true
	player.AttackClip = clip
	clear(player.HitThisSwing)
	components.Animator.Get(e).SetBool(clip, true)

	if !playClip(ecs, e, clip, playerHooks) {
		ResetAttack(ecs, e)
	}
}

// TargetOffset is the point deltaDistance short of target on the way from
// from, never past from itself.
func TargetOffset(from, target components.Vector, deltaDistance float64) components.Vector {
	toward := from.Sub(target)
	dist := toward.Len()
	if dist == 0 {
		return target
	}
	return target.Add(toward.Scale(math.Min(deltaDistance, dist) / dist))
}

// PerformAttack resolves the swing: every live enemy around the strike point
// not yet hit by this swing takes damage and is knocked back.
func PerformAttack(ecs *ecs.ECS, e *donburi.Entry) {
	if isDead(e) {
		return
	}
	space := spaceOf(ecs.World)
	if space == nil {
		return
	}
	player := components.Player.Get(e)
	t := components.Transform.Get(e)
	strike := t.Position.Add(t.Facing.Scale(cfg.Player.StrikeOffset))

	hit := false
	for _, obj := range spatial.Overlap(space, strike, cfg.Player.AttackRange, tags.ResolvEnemy) {
		enemy, ok := obj.Data.(*donburi.Entry)
		if !ok || !enemy.Valid() || isDead(enemy) || player.HitThisSwing[enemy.Entity()] {
			continue
		}
		player.HitThisSwing[enemy.Entity()] = true

		// Knockback first so a killing blow carries into the ragdoll
		applyKnockback(e, enemy)
		TakeDamage(ecs, enemy, cfg.Player.AttackDamage)
		hit = true
	}

	// Play attack sound only if we actually hit an enemy
	if hit {
		playSound(e, cfg.SoundPlayerAttack, comboSound[player.AttackClip])
	}
	logger(ecs.World).Debug("swing resolved",
		zap.String("clip", player.AttackClip),
		zap.Bool("hit", hit))
}

// applyKnockback shoves enemy away from the attacker with some lift. The
// impulse direction is normalized including the lift.
func applyKnockback(attacker, enemy *donburi.Entry) {
	if !enemy.HasComponent(components.Knockback) {
		return
	}
	planar := positionOf(enemy).Sub(positionOf(attacker))
	lift := cfg.Player.AirKnockback
	length := math.Sqrt(planar.X*planar.X + planar.Y*planar.Y + lift*lift)
	if length == 0 {
		return
	}
	kb := components.Knockback.Get(enemy)
	kb.Velocity = planar.Scale(cfg.Player.KnockbackForce / length)
	kb.Lift = lift * cfg.Player.KnockbackForce / length
}

// ResetAttack ends the current move and gives control back.
func ResetAttack(ecs *ecs.ECS, e *donburi.Entry) {
	anim := components.Animator.Get(e)
	for _, clip := range quickCombo {
		anim.SetBool(clip, false)
	}
	for _, clip := range heavyCombo {
		anim.SetBool(clip, false)
	}
	if isDead(e) {
		return
	}
	player := components.Player.Get(e)
	player.CanMove = true
	player.CanChangeTarget = true
	player.IsAttacking = false
	player.AttackClip = ""
}

// GetClose closes the last bit of distance during heavy moves.
func GetClose(ecs *ecs.ECS, e *donburi.Entry) {
	player := components.Player.Get(e)
	target := entryOf(ecs.World, player.Target)
	if target == nil {
		target = entryOf(ecs.World, player.OldTarget)
	}
	if target == nil {
		return
	}
	targetPos := positionOf(target)
	faceTowards(e, targetPos)
	moveTo(e, TargetOffset(positionOf(e), targetPos, cfg.Player.CloseStopDistance), cfg.Player.CloseTime.Seconds())
}
