package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func newRenderFixture(t *testing.T) (*ecs.EntityManager, *RenderSystem, ecs.EntityID) {
	t.Helper()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(em, 0)
	player, err := entities.NewPlayerEntity(em, config.DefaultCombatConfig(), 0)
	if err != nil {
		t.Fatalf("NewPlayerEntity: %v", err)
	}
	rs := NewRenderSystem(em, world, utils.NewCamera(utils.V(0, 0), 32, 640, 480))
	return em, rs, player
}

func TestWeaponBarsFollowAmmo(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"full", 8},
		{"half", 4},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, rs, player := newRenderFixture(t)
			ammo, _ := ecs.GetComponent[*components.AmmoPoolComponent](em, player)
			ammo.Count = tt.count
			UpdateAmmoBar(ammo)

			bars, ok := rs.WeaponBars(player)
			if !ok {
				t.Fatal("WeaponBars() should succeed for the player")
			}
			// 填充条靠左对齐，宽度与剩余弹药成比例
			if math.Abs(bars.Fill.Min.X-bars.Back.Min.X) > 1e-9 {
				t.Errorf("fill left = %v, want %v", bars.Fill.Min.X, bars.Back.Min.X)
			}
			wantWidth := (bars.Back.Max.X - bars.Back.Min.X) * ammo.Fraction
			if got := bars.Fill.Max.X - bars.Fill.Min.X; math.Abs(got-wantWidth) > 1e-9 {
				t.Errorf("fill width = %v, want %v", got, wantWidth)
			}
			if bars.Charging {
				t.Error("idle weapon should not show a charge bar")
			}
		})
	}
}

func TestWeaponBarsCharging(t *testing.T) {
	em, rs, player := newRenderFixture(t)
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](em, player)
	charge, _ := ecs.GetComponent[*components.ChargeComponent](em, player)
	charge.State = components.ChargeCharging
	charge.Seconds = weapon.MaxChargeTime / 2

	bars, _ := rs.WeaponBars(player)
	if !bars.Charging {
		t.Fatal("charging weapon should show a charge bar")
	}
	mid := bars.Back.Center().X
	if math.Abs(bars.Charge.Max.X-mid) > 1e-9 {
		t.Errorf("charge bar end = %v, want %v", bars.Charge.Max.X, mid)
	}
	if bars.Charge.Min.Y <= bars.Back.Max.Y {
		t.Error("charge bar should sit above the ammo bar")
	}
}

func TestWeaponBarsWithoutCollider(t *testing.T) {
	em, rs, _ := newRenderFixture(t)
	id := em.CreateEntity()
	em.AddComponent(id, &components.AmmoPoolComponent{Capacity: 1})

	if _, ok := rs.WeaponBars(id); ok {
		t.Error("entity without a collider has no bars")
	}
}

func TestColliderColor(t *testing.T) {
	em, rs, player := newRenderFixture(t)

	guard := em.CreateEntity()
	em.AddComponent(guard, &components.ColliderComponent{Layer: types.LayerEnemy})
	em.AddComponent(guard, &components.GuardComponent{State: components.GuardChasing})

	tests := []struct {
		name string
		id   ecs.EntityID
		want color.RGBA
	}{
		{"player", player, ColorPlayer},
		{"chasing guard", guard, ColorGuardChase},
		{"no collider", em.CreateEntity(), ColorOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rs.ColliderColor(tt.id); got != tt.want {
				t.Errorf("ColliderColor() = %v, want %v", got, tt.want)
			}
		})
	}

	em.AddComponent(player, &components.FlashEffectComponent{Duration: 0.08, Intensity: 1, IsActive: true})
	if got := rs.ColliderColor(player); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("full flash should render white, got %v", got)
	}
}

func TestBlendWhite(t *testing.T) {
	c := color.RGBA{R: 0, G: 100, B: 255, A: 200}
	tests := []struct {
		amount float64
		want   color.RGBA
	}{
		{0, c},
		{-1, c},
		{1, color.RGBA{R: 255, G: 255, B: 255, A: 200}},
		{0.5, color.RGBA{R: 127, G: 177, B: 255, A: 200}},
	}
	for _, tt := range tests {
		if got := BlendWhite(c, tt.amount); got != tt.want {
			t.Errorf("BlendWhite(%v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

// TestRenderSystemDraw 绘制不应崩溃，包括调试层与已销毁实体
func TestRenderSystemDraw(t *testing.T) {
	em, rs, player := newRenderFixture(t)
	cfg := config.DefaultCombatConfig()
	if _, err := entities.NewSpawnerEntity(em, cfg, player, true, 0); err != nil {
		t.Fatalf("NewSpawnerEntity: %v", err)
	}
	gone := em.CreateEntity()
	em.AddComponent(gone, &components.PositionComponent{})
	em.AddComponent(gone, &components.ColliderComponent{HalfWidth: 1, HalfHeight: 1})
	em.DestroyEntity(gone)

	screen := ebiten.NewImage(640, 480)
	rs.Draw(screen, false)
	rs.Draw(screen, true)
}
