package systems

import (
	"log"
	"math"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/utils"
)

// GuardSystem 守卫 AI
// 每帧由与目标的水平距离 d 推导状态：
//   - d > DetectionRange: Idle，不移动
//   - StopDistance < d <= DetectionRange: Chasing，匀速朝目标移动
//   - d <= StopDistance: Attacking，原地按冷却攻击
type GuardSystem struct {
	entityManager *ecs.EntityManager
	clock         TimeSource
	query         physics.SpatialQuery
	health        *HealthSystem
	cues          CueSink
	verbose       bool
}

// NewGuardSystem 创建守卫系统
func NewGuardSystem(em *ecs.EntityManager, clock TimeSource, query physics.SpatialQuery, health *HealthSystem, cues CueSink) *GuardSystem {
	requireCollaborators("GuardSystem", map[string]any{
		"entityManager": em,
		"clock":         clock,
		"query":         query,
		"health":        health,
		"cues":          cues,
	})
	return &GuardSystem{
		entityManager: em,
		clock:         clock,
		query:         query,
		health:        health,
		cues:          cues,
	}
}

// SetVerbose 开关攻击日志
func (s *GuardSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 更新所有守卫
func (s *GuardSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.GuardComponent, *components.PositionComponent, *components.BodyComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		s.updateGuard(id)
	}
}

func (s *GuardSystem) updateGuard(id ecs.EntityID) {
	guard, _ := ecs.GetComponent[*components.GuardComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)

	targetPos, ok := s.targetPosition(guard.Target)
	if !ok {
		// 没有目标：只清水平驱动，保留竖直速度
		body.VX = 0
		guard.State = components.GuardIdle
		return
	}

	dx := targetPos.X - pos.X
	d := math.Abs(dx)
	toward := utils.SignOrPositive(dx)

	// 转向滞回：正在移动，或明显超出停止距离时才转向
	if math.Abs(body.VX) > guard.FacingVelocityEpsilon || d > guard.StopDistance+guard.FacingDistanceBand {
		s.face(id, toward)
	}

	switch {
	case d > guard.DetectionRange:
		guard.State = components.GuardIdle
		body.VX = 0
	case d > guard.StopDistance:
		guard.State = components.GuardChasing
		body.VX = float64(toward) * guard.MoveSpeed
	default:
		guard.State = components.GuardAttacking
		body.VX = 0
		s.TryAttack(id)
	}
}

// targetPosition 目标必须存活且有位置
func (s *GuardSystem) targetPosition(target ecs.EntityID) (utils.Vec2, bool) {
	if target == ecs.InvalidEntity || !s.entityManager.IsAlive(target) {
		return utils.Vec2{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	if !ok {
		return utils.Vec2{}, false
	}
	return utils.V(pos.X, pos.Y), true
}

func (s *GuardSystem) face(id ecs.EntityID, dir int) {
	facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id)
	if !ok || facing.Dir == dir {
		return
	}
	facing.Dir = dir
	s.cues.Facing(id, dir)
}

// AttackAnchor 攻击判定圆心：身体位置加上随朝向镜像的锚点偏移
func (s *GuardSystem) AttackAnchor(id ecs.EntityID) (utils.Vec2, bool) {
	guard, ok := ecs.GetComponent[*components.GuardComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}, false
	}
	dir := 1
	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok {
		dir = facing.Dir
	}
	return utils.V(pos.X+guard.AttackAnchorX*float64(dir), pos.Y+guard.AttackAnchorY), true
}

// TryAttack 冷却结束时攻击一次
// 无论是否命中都会重置冷却；命中带生命值的目标时造成伤害并击退
// 返回是否造成了伤害
func (s *GuardSystem) TryAttack(id ecs.EntityID) bool {
	guard, ok := ecs.GetComponent[*components.GuardComponent](s.entityManager, id)
	if !ok {
		return false
	}
	now := s.clock.Now()
	if !reached(now, guard.NextAttackTime) {
		return false
	}
	guard.NextAttackTime = now + guard.AttackCooldown

	anchor, ok := s.AttackAnchor(id)
	if !ok {
		return false
	}
	hit, found := s.query.OverlapCircle(anchor, guard.AttackRange, guard.TargetMask)
	if !found {
		return false
	}
	victim, _, ok := ecs.FindInSelfOrAncestors[*components.HealthComponent](s.entityManager, hit)
	if !ok || victim == id {
		return false
	}

	dir := 1
	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok {
		dir = facing.Dir
	}
	if _, body, ok := ecs.FindInSelfOrAncestors[*components.BodyComponent](s.entityManager, hit); ok {
		body.VX = guard.KnockbackX * float64(dir)
		body.VY = math.Max(guard.KnockbackY, body.VY)
	}

	damaged := s.health.TakeDamage(victim, guard.AttackDamage)
	if s.verbose {
		log.Printf("[GuardSystem] Guard %d hit %d for %d (damaged=%v)", id, victim, guard.AttackDamage, damaged)
	}
	return damaged
}
