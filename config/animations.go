package config

import (
	"strings"
	"time"
)

// Animator parameter names the simulation writes for the render layer.
const (
	ParamSpeed          = "speed"
	ParamIsDead         = "isDead"
	ParamIsAttacking    = "isAttacking"
	ParamIsJumpAttack   = "isJumpAttacking"
	ParamIsRetreating   = "isRetreating"
	ParamDash           = "dash"
	ParamPunch          = "punch"
	ParamKick           = "kick"
	ParamMMAKick        = "mmakick"
	ParamHeavyAttack1   = "heavyAttack1"
	ParamHeavyAttack2   = "heavyAttack2"
	TriggerAttack       = "attack"
	TriggerNormalAttack = "normalAttack"
	TriggerHeavyAttack  = "heavyAttack"
	TriggerJumpAttack   = "jumpAttack"
	TriggerGroundBomb   = "groundBomb"
)

// Hook names fired from clip timings.
const (
	HookGetClose      = "GetClose"
	HookPerformAttack = "PerformAttack"
	HookResetAttack   = "ResetAttack"
	HookAttackHit     = "OnAttackHit"
	HookNormalHit     = "OnNormalAttackHit"
	HookHeavyHit      = "OnHeavyAttackHit"
	HookAttackEnd     = "OnAttackEnd"
)

// ClipEvent is one animation-event callback at an offset into a clip.
type ClipEvent struct {
	Hook string        `mapstructure:"hook"`
	At   time.Duration `mapstructure:"at"`
}

// AnimationConfig maps clip names to the hook timeline they carry.
type AnimationConfig struct {
	Clips map[string][]ClipEvent `mapstructure:"clips"`
}

var Animation AnimationConfig

// ClipEvents returns the hook timeline for a clip. Clip names are matched
// case-insensitively since config keys arrive lower-cased.
func ClipEvents(clip string) []ClipEvent {
	return Animation.Clips[strings.ToLower(clip)]
}

func resetAnimation() {
	quick := []ClipEvent{
		{Hook: HookPerformAttack, At: 350 * time.Millisecond},
		{Hook: HookResetAttack, At: 700 * time.Millisecond},
	}
	heavy := []ClipEvent{
		{Hook: HookGetClose, At: 150 * time.Millisecond},
		{Hook: HookPerformAttack, At: 500 * time.Millisecond},
		{Hook: HookResetAttack, At: time.Second},
	}
	Animation = AnimationConfig{Clips: map[string][]ClipEvent{
		"punch":            quick,
		"kick":             quick,
		"mmakick":          quick,
		"heavyattack1":     heavy,
		"heavyattack2":     heavy,
		"skeleton_attack":  {{Hook: HookAttackHit, At: 600 * time.Millisecond}, {Hook: HookAttackEnd, At: 1200 * time.Millisecond}},
		"mutant_normal":    {{Hook: HookNormalHit, At: 500 * time.Millisecond}, {Hook: HookAttackEnd, At: time.Second}},
		"mutant_heavy":     {{Hook: HookHeavyHit, At: 800 * time.Millisecond}, {Hook: HookAttackEnd, At: 1400 * time.Millisecond}},
	}}
}
