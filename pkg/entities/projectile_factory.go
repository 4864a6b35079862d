package entities

import (
	"fmt"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// NewCatProjectile 创建猫投射物实体
// 投射物由物理世界积分运动，碰到任何碰撞体都会销毁，超过存活时间也会销毁
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗配置（伤害、存活时间、目标层）
//   - req: 发射请求（位置、初速度、忽略集合）
func NewCatProjectile(em *ecs.EntityManager, cfg *config.CombatConfig, req ProjectileSpawn) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("combat config cannot be nil")
	}

	pc := cfg.Projectile
	targetMask, err := types.MaskFromNames(pc.TargetLayers)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("projectile target layers: %w", err)
	}

	exclusions := make(map[ecs.EntityID]struct{}, len(req.Exclusions))
	for _, ex := range req.Exclusions {
		exclusions[ex] = struct{}{}
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: req.Position.X, Y: req.Position.Y})
	em.AddComponent(id, &components.BodyComponent{
		VX:             req.Velocity.X,
		VY:             req.Velocity.Y,
		GravityScale:   pc.GravityScale,
		ReportContacts: true,
	})
	em.AddComponent(id, &components.ColliderComponent{
		HalfWidth:  pc.HalfSize,
		HalfHeight: pc.HalfSize,
		Layer:      types.LayerProjectile,
	})
	em.AddComponent(id, &components.ProjectileComponent{
		Damage:     pc.Damage,
		TargetMask: targetMask,
		Owner:      req.Owner,
		Kind:       req.Kind,
		Exclusions: exclusions,
	})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: pc.MaxLifetime})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorCatProjectile})

	return id, nil
}
