package systems

import (
	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
)

// FlashEffectSystem 受击闪烁系统
// 管理闪烁效果的生命周期，到时移除组件（恢复原色）
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	requireCollaborators("FlashEffectSystem", map[string]any{"entityManager": em})
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有闪烁效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt
		if flashComp.Elapsed >= flashComp.Duration {
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
		}
	}
}

// FlashAmount 渲染端使用的当前闪烁强度，0 表示不闪烁
func FlashAmount(em *ecs.EntityManager, id ecs.EntityID) float64 {
	flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](em, id)
	if !ok || !flashComp.IsActive {
		return 0
	}
	return flashComp.Intensity
}
