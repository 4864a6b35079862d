package systems

import (
	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
)

// LifetimeSystem 管理实体的存活时间上限
// 已被碰撞销毁的实体直接跳过，两条销毁路径互斥
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	requireCollaborators("LifetimeSystem", map[string]any{"entityManager": em})
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			// 过期后迟到的接触不再结算
			if proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id); ok {
				proj.Resolved = true
			}
			s.entityManager.DestroyEntityTree(id)
		}
	}
}
