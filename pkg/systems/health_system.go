package systems

import (
	"log"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
)

// DeathListener 死亡事件监听器
type DeathListener func(id ecs.EntityID)

// HealthSystem 生命值模型
// 所有伤害（投射物、守卫攻击）都通过 TakeDamage 结算
type HealthSystem struct {
	entityManager  *ecs.EntityManager
	cues           CueSink
	flashDuration  float64
	flashIntensity float64
	listeners      []DeathListener
}

// NewHealthSystem 创建生命值系统
func NewHealthSystem(em *ecs.EntityManager, cues CueSink, flash config.FlashConfig) *HealthSystem {
	requireCollaborators("HealthSystem", map[string]any{"entityManager": em, "cues": cues})
	return &HealthSystem{
		entityManager:  em,
		cues:           cues,
		flashDuration:  flash.Duration,
		flashIntensity: flash.Intensity,
	}
}

// OnDeath 注册死亡监听器，按注册顺序调用
func (s *HealthSystem) OnDeath(fn DeathListener) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// TakeDamage 对实体造成伤害
// 已死亡或没有生命值组件时为空操作，返回 false
// 实际扣血量为 max(1, amount)，生命值不会低于 0
func (s *HealthSystem) TakeDamage(id ecs.EntityID, amount int) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok || health.Current <= 0 {
		return false
	}

	if amount < 1 {
		amount = 1
	}
	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}

	if health.Current > 0 {
		s.startFlash(id)
		return true
	}

	s.die(id, health)
	return true
}

// IsDead 实体是否已死亡（没有生命值组件的实体视为未死亡）
func (s *HealthSystem) IsDead(id ecs.EntityID) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	return ok && health.Current <= 0
}

// HitPoints 返回当前与最大生命值
func (s *HealthSystem) HitPoints(id ecs.EntityID) (current, max int, ok bool) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return 0, 0, false
	}
	return health.Current, health.MaxHitPoints, true
}

// startFlash 挂上（或重置）受击闪烁
func (s *HealthSystem) startFlash(id ecs.EntityID) {
	if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok {
		flash.Elapsed = 0
		flash.IsActive = true
	} else {
		s.entityManager.AddComponent(id, &components.FlashEffectComponent{
			Duration:  s.flashDuration,
			Intensity: s.flashIntensity,
			IsActive:  true,
		})
	}
	s.cues.Flash(id)
}

// die 死亡只触发一次
func (s *HealthSystem) die(id ecs.EntityID, health *components.HealthComponent) {
	if health.DeathFired {
		return
	}
	health.DeathFired = true

	log.Printf("[HealthSystem] Entity %d died", id)
	for _, fn := range s.listeners {
		fn(id)
	}
	s.cues.Death(id)
	s.entityManager.DestroyEntityTree(id)
}
