package entities

import (
	"fmt"
	"log"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// NewPlayerEntity 创建玩家实体
// 弹药初始为满，下次恢复时间 = now + 恢复间隔，上次投掷时间设为很久以前
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗配置
//   - now: 当前模拟时间
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.CombatConfig, now float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("combat config cannot be nil")
	}

	p := cfg.Player
	w := cfg.Weapon
	id := em.CreateEntity()

	em.AddComponent(id, &components.PositionComponent{X: p.SpawnX, Y: p.SpawnY})
	em.AddComponent(id, &components.BodyComponent{GravityScale: p.GravityScale})
	em.AddComponent(id, &components.ColliderComponent{
		HalfWidth:  p.HalfWidth,
		HalfHeight: p.HalfHeight,
		Layer:      types.LayerPlayer,
	})
	em.AddComponent(id, &components.FacingComponent{Dir: 1})
	em.AddComponent(id, &components.HealthComponent{
		MaxHitPoints: cfg.Health.PlayerMaxHP,
		Current:      cfg.Health.PlayerMaxHP,
	})

	em.AddComponent(id, &components.WeaponComponent{
		ProjectileTemplate: cfg.Projectile.Template,
		LightThrowSpeed:    w.LightThrowSpeed,
		ThrowCooldown:      w.ThrowCooldown,
		ChargedMinSpeed:    w.ChargedMinSpeed,
		ChargedMaxSpeed:    w.ChargedMaxSpeed,
		MaxChargeTime:      w.MaxChargeTime,
		SpawnEdgePadding:   w.SpawnEdgePadding,
		SpawnYOffset:       w.SpawnYOffset,
		LastThrowTime:      -999,
		Enabled:            true,
	})
	em.AddComponent(id, &components.AmmoPoolComponent{
		Capacity:      w.MaxAmmo,
		Count:         w.MaxAmmo,
		RegenInterval: w.ReloadSpeed,
		NextRegenTime: now + w.ReloadSpeed,
		Fraction:      1,
		BarFullWidth:  w.BarFullWidth,
		BarFillScaleX: 1,
	})
	em.AddComponent(id, &components.ChargeComponent{State: components.ChargeIdle})
	em.AddComponent(id, &components.WeaponInputComponent{})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorPlayer})

	log.Printf("[PlayerFactory] Created player %d at (%.2f, %.2f), ammo %d/%d", id, p.SpawnX, p.SpawnY, w.MaxAmmo, w.MaxAmmo)
	return id, nil
}
