package entities

import (
	"fmt"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
)

// Factory 按模板名创建运行时实体
// 武器系统通过它发射投射物，生成系统通过它生成守卫
type Factory struct {
	em        *ecs.EntityManager
	cfg       *config.CombatConfig
	templates map[string]components.BehaviorType
}

// NewFactory 创建工厂，并注册配置中的投射物与守卫模板
func NewFactory(em *ecs.EntityManager, cfg *config.CombatConfig) *Factory {
	f := &Factory{
		em:        em,
		cfg:       cfg,
		templates: make(map[string]components.BehaviorType),
	}
	if cfg != nil {
		if cfg.Projectile.Template != "" {
			f.RegisterTemplate(cfg.Projectile.Template, components.BehaviorCatProjectile)
		}
		if cfg.Guard.Template != "" {
			f.RegisterTemplate(cfg.Guard.Template, components.BehaviorGuard)
		}
	}
	return f
}

// RegisterTemplate 注册模板名
func (f *Factory) RegisterTemplate(name string, kind components.BehaviorType) {
	f.templates[name] = kind
}

// HasTemplate 模板是否已注册
func (f *Factory) HasTemplate(name string) bool {
	_, ok := f.templates[name]
	return ok
}

// SpawnProjectile 按请求创建投射物
func (f *Factory) SpawnProjectile(req ProjectileSpawn) (ecs.EntityID, error) {
	kind, ok := f.templates[req.Template]
	if !ok || kind != components.BehaviorCatProjectile {
		return ecs.InvalidEntity, fmt.Errorf("projectile template %q: %w", req.Template, ErrUnknownTemplate)
	}
	return NewCatProjectile(f.em, f.cfg, req)
}

// SpawnGuard 按请求创建守卫
func (f *Factory) SpawnGuard(req GuardSpawn) (ecs.EntityID, error) {
	kind, ok := f.templates[req.Template]
	if !ok || kind != components.BehaviorGuard {
		return ecs.InvalidEntity, fmt.Errorf("guard template %q: %w", req.Template, ErrUnknownTemplate)
	}
	return NewGuardEntity(f.em, f.cfg, req.Position, req.Target)
}
