package entities

import (
	"fmt"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
)

// NewGuardEntity 创建守卫实体
// 目标在创建时注入，守卫自己不查找玩家
func NewGuardEntity(em *ecs.EntityManager, cfg *config.CombatConfig, pos utils.Vec2, target ecs.EntityID) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("combat config cannot be nil")
	}

	g := cfg.Guard
	targetMask, err := types.MaskFromNames(g.TargetLayers)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("guard target layers: %w", err)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	em.AddComponent(id, &components.BodyComponent{GravityScale: g.GravityScale})
	em.AddComponent(id, &components.ColliderComponent{
		HalfWidth:  g.HalfWidth,
		HalfHeight: g.HalfHeight,
		Layer:      types.LayerEnemy,
	})
	em.AddComponent(id, &components.FacingComponent{Dir: 1})
	em.AddComponent(id, &components.HealthComponent{
		MaxHitPoints: cfg.Health.GuardMaxHP,
		Current:      cfg.Health.GuardMaxHP,
	})
	em.AddComponent(id, &components.GuardComponent{
		Target:                target,
		MoveSpeed:             g.MoveSpeed,
		DetectionRange:        g.DetectionRange,
		StopDistance:          g.StopDistance,
		AttackRange:           g.AttackRange,
		AttackCooldown:        g.AttackCooldown,
		AttackDamage:          g.AttackDamage,
		AttackAnchorX:         g.AttackAnchorX,
		AttackAnchorY:         g.AttackAnchorY,
		TargetMask:            targetMask,
		KnockbackX:            g.KnockbackX,
		KnockbackY:            g.KnockbackY,
		FacingVelocityEpsilon: g.FacingVelocityEpsilon,
		FacingDistanceBand:    g.FacingDistanceBand,
		State:                 components.GuardIdle,
	})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorGuard})

	return id, nil
}
