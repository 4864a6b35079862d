package entities

import (
	"errors"
	"testing"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
)

func TestFactoryTemplates(t *testing.T) {
	em := ecs.NewEntityManager()
	f := NewFactory(em, config.DefaultCombatConfig())

	if !f.HasTemplate("cat") || !f.HasTemplate("guard") {
		t.Fatal("default templates should be registered")
	}
	if f.HasTemplate("dog") {
		t.Error("unexpected template dog")
	}

	tests := []struct {
		name    string
		spawn   func() (ecs.EntityID, error)
		wantErr bool
	}{
		{"projectile ok", func() (ecs.EntityID, error) {
			return f.SpawnProjectile(ProjectileSpawn{Template: "cat"})
		}, false},
		{"projectile unknown", func() (ecs.EntityID, error) {
			return f.SpawnProjectile(ProjectileSpawn{Template: "dog"})
		}, true},
		{"projectile with guard template", func() (ecs.EntityID, error) {
			return f.SpawnProjectile(ProjectileSpawn{Template: "guard"})
		}, true},
		{"guard ok", func() (ecs.EntityID, error) {
			return f.SpawnGuard(GuardSpawn{Template: "guard", Position: utils.V(3, 1)})
		}, false},
		{"guard unknown", func() (ecs.EntityID, error) {
			return f.SpawnGuard(GuardSpawn{Template: ""})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.spawn()
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTemplate) {
					t.Errorf("expected ErrUnknownTemplate, got %v", err)
				}
				return
			}
			if err != nil || id == ecs.InvalidEntity {
				t.Errorf("unexpected result id=%d err=%v", id, err)
			}
		})
	}
}

func TestNewPlayerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultCombatConfig()

	id, err := NewPlayerEntity(em, cfg, 10)
	if err != nil {
		t.Fatalf("NewPlayerEntity() error = %v", err)
	}

	ammo, ok := ecs.GetComponent[*components.AmmoPoolComponent](em, id)
	if !ok {
		t.Fatal("missing AmmoPoolComponent")
	}
	if ammo.Count != 8 || ammo.Capacity != 8 || ammo.Fraction != 1 {
		t.Errorf("ammo should start full: %+v", ammo)
	}
	if ammo.NextRegenTime != 10.5 {
		t.Errorf("NextRegenTime = %v, want 10.5", ammo.NextRegenTime)
	}
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](em, id)
	if weapon.LastThrowTime != -999 || !weapon.Enabled {
		t.Errorf("unexpected weapon state: %+v", weapon)
	}
	col, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
	if col.Layer != types.LayerPlayer {
		t.Errorf("player collider layer = %v", col.Layer)
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if health.Current != 3 {
		t.Errorf("player HP = %d, want 3", health.Current)
	}

	if _, err := NewPlayerEntity(nil, cfg, 0); err == nil {
		t.Error("expected error for nil entity manager")
	}
}

func TestNewGuardEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultCombatConfig()

	id, err := NewGuardEntity(em, cfg, utils.V(4, 0.55), 42)
	if err != nil {
		t.Fatalf("NewGuardEntity() error = %v", err)
	}
	guard, ok := ecs.GetComponent[*components.GuardComponent](em, id)
	if !ok {
		t.Fatal("missing GuardComponent")
	}
	if guard.Target != 42 || guard.State != components.GuardIdle {
		t.Errorf("unexpected guard: %+v", guard)
	}
	if !guard.TargetMask.Contains(types.LayerPlayer) {
		t.Errorf("guard should target player layer, mask %v", guard.TargetMask)
	}
}

func TestNewGroundSegment(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewGroundSegment(em, config.GroundSegment{X: 0, Y: -1, Width: 10, Height: 2})
	if err != nil {
		t.Fatalf("NewGroundSegment() error = %v", err)
	}
	col, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
	if col.HalfWidth != 5 || col.HalfHeight != 1 || col.Layer != types.LayerGround {
		t.Errorf("unexpected collider: %+v", col)
	}

	if _, err := NewGroundSegment(em, config.GroundSegment{Width: 0, Height: 1}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestNewSpawnerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultCombatConfig()
	x := 3.0
	cfg.Spawner.SpawnPoints = []*float64{&x, nil}
	cfg.Spawner.RampDifficulty = true

	id, err := NewSpawnerEntity(em, cfg, 1, true, 2)
	if err != nil {
		t.Fatalf("NewSpawnerEntity() error = %v", err)
	}
	sp, _ := ecs.GetComponent[*components.SpawnerComponent](em, id)
	if !sp.Enabled {
		t.Error("spawner should be enabled")
	}
	if len(sp.SpawnPoints) != 2 || !sp.SpawnPoints[0].Valid || sp.SpawnPoints[1].Valid {
		t.Errorf("unexpected spawn points: %+v", sp.SpawnPoints)
	}
	if sp.SpawnTimer.NextFireAt != 2 || !sp.SpawnTimer.Armed {
		t.Errorf("spawn timer should fire immediately: %+v", sp.SpawnTimer)
	}
	if sp.RampTimer.NextFireAt != 22 || !sp.RampTimer.Armed {
		t.Errorf("ramp timer should wait one interval: %+v", sp.RampTimer)
	}
	if sp.GroundMask.Contains(types.LayerEnemy) || !sp.GroundMask.Contains(types.LayerGround) {
		t.Errorf("unexpected ground mask: %v", sp.GroundMask)
	}

	disabled, err := NewSpawnerEntity(em, cfg, 1, false, 0)
	if err != nil {
		t.Fatalf("NewSpawnerEntity() error = %v", err)
	}
	sp2, _ := ecs.GetComponent[*components.SpawnerComponent](em, disabled)
	if sp2.Enabled {
		t.Error("spawner with unknown template should be disabled")
	}
}
