package systems

import (
	"log"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
)

// ProjectileSystem 投射物命中结算
// 第一次接触任何碰撞体即销毁；只有目标层内且自身或祖先带生命值的碰撞体才受伤
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	health        *HealthSystem
	verbose       bool
}

// NewProjectileSystem 创建投射物系统
func NewProjectileSystem(em *ecs.EntityManager, health *HealthSystem) *ProjectileSystem {
	requireCollaborators("ProjectileSystem", map[string]any{"entityManager": em, "health": health})
	return &ProjectileSystem{
		entityManager: em,
		health:        health,
	}
}

// SetVerbose 开关命中日志
func (s *ProjectileSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// OnCollision 结算投射物与碰撞体的接触
// 返回是否造成了伤害。重复调用（或已过期的投射物）为空操作
func (s *ProjectileSystem) OnCollision(projectile, other ecs.EntityID) bool {
	if !s.entityManager.IsAlive(projectile) {
		return false
	}
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, projectile)
	if !ok || proj.Resolved {
		return false
	}
	if _, excluded := proj.Exclusions[other]; excluded {
		return false
	}
	proj.Resolved = true

	damaged := false
	if col, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, other); ok && proj.TargetMask.Contains(col.Layer) {
		if owner, _, found := ecs.FindInSelfOrAncestors[*components.HealthComponent](s.entityManager, other); found {
			damaged = s.health.TakeDamage(owner, proj.Damage)
		}
	}

	if s.verbose {
		log.Printf("[ProjectileSystem] Projectile %d hit %d (damaged=%v)", projectile, other, damaged)
	}
	s.entityManager.DestroyEntityTree(projectile)
	return damaged
}

// HandleContact 物理世界接触回调，自动识别哪一方是投射物
// 每对接触只上报一次，两个投射物相撞时双方都要结算
func (s *ProjectileSystem) HandleContact(a, b ecs.EntityID) {
	if ecs.HasComponent[*components.ProjectileComponent](s.entityManager, a) {
		s.OnCollision(a, b)
	}
	if ecs.HasComponent[*components.ProjectileComponent](s.entityManager, b) {
		s.OnCollision(b, a)
	}
}
