package components

import (
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// GuardState 守卫状态，每帧由与目标的水平距离推导
type GuardState int

const (
	// GuardIdle 目标在侦测范围外，不移动
	GuardIdle GuardState = iota
	// GuardChasing 追击
	GuardChasing
	// GuardAttacking 进入停止距离，原地攻击
	GuardAttacking
)

// String 返回状态名
func (s GuardState) String() string {
	switch s {
	case GuardChasing:
		return "chasing"
	case GuardAttacking:
		return "attacking"
	default:
		return "idle"
	}
}

// GuardComponent 巡逻守卫
type GuardComponent struct {
	Target ecs.EntityID // 追踪目标（创建时注入）

	MoveSpeed      float64
	DetectionRange float64
	StopDistance   float64

	AttackRange    float64         // 攻击判定圆半径
	AttackCooldown float64         // 攻击冷却（秒）
	AttackDamage   int             // 攻击伤害
	AttackAnchorX  float64         // 攻击判定点（朝右时相对身体的偏移，朝左时X取反）
	AttackAnchorY  float64         //
	TargetMask     types.LayerMask // 攻击可命中的层

	KnockbackX float64 // 击退水平速度（按朝向取符号）
	KnockbackY float64 // 击退最小上抛速度

	FacingVelocityEpsilon float64 // 转向滞回：水平速度阈值
	FacingDistanceBand    float64 // 转向滞回：超过停止距离的余量

	State          GuardState // 最近一次推导的状态（仅供观察）
	NextAttackTime float64    // 下次允许攻击的时间
}
