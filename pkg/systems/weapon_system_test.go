package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/utils"
)

type weaponFixture struct {
	em     *ecs.EntityManager
	clock  *fakeClock
	world  *physics.World
	cues   *cueRecorder
	ws     *WeaponSystem
	player ecs.EntityID
}

func newWeaponFixture(t *testing.T) *weaponFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	cfg := config.DefaultCombatConfig()
	clock := &fakeClock{}
	world := physics.NewWorld(em, 0)
	cues := newCueRecorder()

	player, err := entities.NewPlayerEntity(em, cfg, clock.Now())
	if err != nil {
		t.Fatalf("NewPlayerEntity: %v", err)
	}
	return &weaponFixture{
		em:     em,
		clock:  clock,
		world:  world,
		cues:   cues,
		ws:     NewWeaponSystem(em, clock, world, entities.NewFactory(em, cfg), cues),
		player: player,
	}
}

func (f *weaponFixture) ammo() *components.AmmoPoolComponent {
	a, _ := ecs.GetComponent[*components.AmmoPoolComponent](f.em, f.player)
	return a
}

func (f *weaponFixture) charge() *components.ChargeComponent {
	c, _ := ecs.GetComponent[*components.ChargeComponent](f.em, f.player)
	return c
}

func (f *weaponFixture) input() *components.WeaponInputComponent {
	in, _ := ecs.GetComponent[*components.WeaponInputComponent](f.em, f.player)
	return in
}

func (f *weaponFixture) weapon() *components.WeaponComponent {
	w, _ := ecs.GetComponent[*components.WeaponComponent](f.em, f.player)
	return w
}

// aimRight 瞄准玩家正右方，方向恰好为 (1, 0)
func (f *weaponFixture) aimRight() {
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)
	in := f.input()
	in.AimX = pos.X + 10
	in.AimY = pos.Y
}

func (f *weaponFixture) tick(dt float64) {
	f.clock.Advance(dt)
	f.ws.Update(dt)
}

func (f *weaponFixture) projectiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ProjectileComponent](f.em)
}

// TestAmmoRegenScenario 容量 8、空弹、间隔 0.5s：2 秒后恰好 4 发，与帧长无关
func TestAmmoRegenScenario(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		ticks int
	}{
		{"eighth second", 0.125, 16},
		{"60 fps", 1.0 / 60, 120},
		{"tenth second", 0.1, 20},
		{"30 fps", 1.0 / 30, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWeaponFixture(t)
			ammo := f.ammo()
			ammo.Count = 0
			ammo.NextRegenTime = f.clock.Now() + ammo.RegenInterval

			for i := 0; i < tt.ticks; i++ {
				f.tick(tt.dt)
			}
			if ammo.Count != 4 {
				t.Errorf("after %v s: Count = %d, want 4", f.clock.Now(), ammo.Count)
			}
			if ammo.Fraction != 0.5 {
				t.Errorf("Fraction = %v, want 0.5", ammo.Fraction)
			}
		})
	}
}

// TestAmmoRegenNoCatchUp 一帧跨过多个间隔也只恢复一发
func TestAmmoRegenNoCatchUp(t *testing.T) {
	f := newWeaponFixture(t)
	ammo := f.ammo()
	ammo.Count = 0

	f.tick(10)
	if ammo.Count != 1 {
		t.Errorf("Count = %d, want 1", ammo.Count)
	}
	if ammo.NextRegenTime != 10.5 {
		t.Errorf("NextRegenTime = %v, want 10.5", ammo.NextRegenTime)
	}
}

func TestLightThrow(t *testing.T) {
	f := newWeaponFixture(t)
	f.tick(0.01)
	f.aimRight()
	f.input().LightPressed = true
	f.tick(0.01)

	if f.ammo().Count != 7 {
		t.Fatalf("Count = %d, want 7", f.ammo().Count)
	}
	if f.weapon().LastThrowTime != f.clock.Now() {
		t.Errorf("LastThrowTime = %v, want %v", f.weapon().LastThrowTime, f.clock.Now())
	}
	if f.input().LightPressed {
		t.Error("edge flag should be cleared after update")
	}

	projs := f.projectiles()
	if len(projs) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(projs))
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](f.em, projs[0])
	if body.VX != 14 || body.VY != 0 {
		t.Errorf("velocity = (%v, %v), want (14, 0)", body.VX, body.VY)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, projs[0])
	playerBounds, _ := f.world.Bounds(f.player)
	if math.Abs(pos.X-(playerBounds.Max.X+0.06)) > 1e-9 {
		t.Errorf("spawn X = %v, want %v", pos.X, playerBounds.Max.X+0.06)
	}
	if math.Abs(pos.Y-(playerBounds.Center().Y+0.10)) > 1e-9 {
		t.Errorf("spawn Y = %v, want %v", pos.Y, playerBounds.Center().Y+0.10)
	}

	if !f.world.IsIgnored(f.player, projs[0]) {
		t.Error("owner collider should be ignored against the projectile")
	}
	if len(f.cues.throws) != 1 || f.cues.throws[0] != components.ThrowLight {
		t.Errorf("throw cues = %v", f.cues.throws)
	}
	if got := f.cues.fractions[len(f.cues.fractions)-1]; got != 7.0/8.0 {
		t.Errorf("last ammo fraction cue = %v, want 0.875", got)
	}
}

func TestLightThrowCooldown(t *testing.T) {
	f := newWeaponFixture(t)
	f.aimRight()

	f.input().LightPressed = true
	f.tick(0.5)
	f.input().LightPressed = true
	f.tick(0.05) // 冷却 0.08s 未过
	if len(f.projectiles()) != 1 {
		t.Fatalf("cooldown should block the second throw, got %d projectiles", len(f.projectiles()))
	}

	f.input().LightPressed = true
	f.tick(0.05)
	if len(f.projectiles()) != 2 {
		t.Errorf("throw after cooldown should succeed, got %d projectiles", len(f.projectiles()))
	}
}

func TestFailedFireNeverDecrements(t *testing.T) {
	f := newWeaponFixture(t)
	f.ammo().Count = 0
	f.ammo().NextRegenTime = 100
	f.aimRight()

	f.input().LightPressed = true
	f.tick(0.5)

	if f.ammo().Count != 0 {
		t.Errorf("Count = %d, want 0", f.ammo().Count)
	}
	if len(f.projectiles()) != 0 {
		t.Error("no projectile should be spawned without ammo")
	}
}

func TestSpawnFailureKeepsAmmo(t *testing.T) {
	f := newWeaponFixture(t)
	f.ws = NewWeaponSystem(f.em, f.clock, f.world, failingSpawner{}, f.cues)
	f.aimRight()

	f.input().LightPressed = true
	f.tick(0.5)
	if f.ammo().Count != 8 {
		t.Errorf("Count = %d, want 8", f.ammo().Count)
	}
	if f.weapon().LastThrowTime != -999 {
		t.Errorf("LastThrowTime should be untouched, got %v", f.weapon().LastThrowTime)
	}
}

// TestChargeHeldTwiceMaxTime 按住两倍蓄满时间后松开，速度恰好为最大值
func TestChargeHeldTwiceMaxTime(t *testing.T) {
	f := newWeaponFixture(t)
	f.aimRight()

	in := f.input()
	in.HeavyPressed = true
	in.HeavyHeld = true
	f.tick(0.5)
	if f.charge().State != components.ChargeCharging {
		t.Fatal("press should enter Charging")
	}

	for i := 0; i < 11; i++ {
		f.input().HeavyHeld = true
		f.tick(0.5)
		if f.charge().Seconds > 3 {
			t.Fatalf("charge %v exceeds max", f.charge().Seconds)
		}
	}
	if f.charge().Seconds != 3 {
		t.Fatalf("charge = %v, want clamped 3", f.charge().Seconds)
	}

	in.HeavyHeld = false
	in.HeavyReleased = true
	f.tick(0.01)

	if f.charge().State != components.ChargeIdle || f.charge().Seconds != 0 {
		t.Errorf("release should reset to Idle: %+v", f.charge())
	}
	projs := f.projectiles()
	if len(projs) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(projs))
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](f.em, projs[0])
	if body.VX != 28 {
		t.Errorf("charged speed = %v, want 28", body.VX)
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](f.em, projs[0])
	if proj.Kind != components.ThrowHeavy {
		t.Errorf("kind = %v, want heavy", proj.Kind)
	}
	if len(f.cues.charging) != 2 || !f.cues.charging[0] || f.cues.charging[1] {
		t.Errorf("charging cues = %v, want [true false]", f.cues.charging)
	}
}

// TestChargedSpeedMonotone 速度随蓄力单调不减，且落在 [min, max]
func TestChargedSpeedMonotone(t *testing.T) {
	f := newWeaponFixture(t)
	prev := math.Inf(-1)
	for s := -1.0; s <= 7.0; s += 0.05 {
		v := f.ws.ChargedSpeed(f.player, s)
		if v < prev {
			t.Fatalf("speed decreased at %v: %v < %v", s, v, prev)
		}
		if v < 8 || v > 28 {
			t.Fatalf("speed %v out of range at %v", v, s)
		}
		prev = v
	}
	if f.ws.ChargedSpeed(f.player, 0) != 8 {
		t.Error("zero charge should give min speed")
	}
}

func TestReleaseWithoutAmmoDiscardsCharge(t *testing.T) {
	f := newWeaponFixture(t)
	f.ammo().Count = 0
	f.ammo().NextRegenTime = 100
	f.aimRight()

	in := f.input()
	in.HeavyPressed = true
	in.HeavyHeld = true
	f.tick(0.5)
	in.HeavyHeld = false
	in.HeavyReleased = true
	f.tick(0.5)

	if f.charge().State != components.ChargeIdle {
		t.Error("charge should return to Idle even when the throw fails")
	}
	if len(f.projectiles()) != 0 || f.ammo().Count != 0 {
		t.Error("discarded charge should not fire or consume ammo")
	}
}

// TestNotHeldCountsAsRelease 丢失松开事件时，未按住且有蓄力也会投出
func TestNotHeldCountsAsRelease(t *testing.T) {
	f := newWeaponFixture(t)
	f.aimRight()

	in := f.input()
	in.HeavyPressed = true
	in.HeavyHeld = true
	f.tick(0.5)

	in.HeavyHeld = false
	f.tick(0.5)

	if f.charge().State != components.ChargeIdle {
		t.Error("should leave Charging")
	}
	if len(f.projectiles()) != 1 {
		t.Errorf("expected a throw, got %d projectiles", len(f.projectiles()))
	}
}

func TestChargeCancelledWithoutHold(t *testing.T) {
	f := newWeaponFixture(t)
	f.aimRight()

	f.input().HeavyPressed = true // 按下但本帧未按住
	f.tick(0.5)

	if f.charge().State != components.ChargeIdle {
		t.Error("charge with no hold should cancel back to Idle")
	}
	if len(f.projectiles()) != 0 {
		t.Error("cancel should not throw")
	}
}

func TestSetEnabledFalseForcesIdle(t *testing.T) {
	f := newWeaponFixture(t)
	f.aimRight()

	in := f.input()
	in.HeavyPressed = true
	in.HeavyHeld = true
	f.tick(0.5)

	f.ws.SetEnabled(f.player, false)
	if f.charge().State != components.ChargeIdle || f.charge().Seconds != 0 {
		t.Errorf("disable should force Idle: %+v", f.charge())
	}
	if last := f.cues.charging[len(f.cues.charging)-1]; last {
		t.Error("disable should clear the charging signal")
	}
	if f.ws.CanFire(f.player) {
		t.Error("disabled weapon should not fire")
	}

	f.input().LightPressed = true
	f.tick(0.5)
	if len(f.projectiles()) != 0 {
		t.Error("disabled weapon threw a projectile")
	}

	f.ws.SetEnabled(f.player, true)
	if !f.ws.CanFire(f.player) {
		t.Error("re-enabled weapon should fire")
	}
}

func TestCanFireTemplate(t *testing.T) {
	f := newWeaponFixture(t)
	f.tick(1)
	if !f.ws.CanFire(f.player) {
		t.Fatal("fresh weapon should be able to fire")
	}

	f.weapon().ProjectileTemplate = ""
	if f.ws.CanFire(f.player) {
		t.Error("empty template should disable firing")
	}
	f.weapon().ProjectileTemplate = "dog"
	if f.ws.CanFire(f.player) {
		t.Error("unregistered template should disable firing")
	}
}

func TestAimDirection(t *testing.T) {
	f := newWeaponFixture(t)
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)

	if got := f.ws.AimDirection(f.player, utils.V(pos.X, pos.Y)); got != utils.Right {
		t.Errorf("degenerate aim = %v, want %v", got, utils.Right)
	}

	got := f.ws.AimDirection(f.player, utils.V(pos.X-3, pos.Y+4))
	if math.Abs(got.X+0.6) > 1e-9 || math.Abs(got.Y-0.8) > 1e-9 {
		t.Errorf("aim = %v, want (-0.6, 0.8)", got)
	}
	facing, _ := ecs.GetComponent[*components.FacingComponent](f.em, f.player)
	if facing.Dir != -1 {
		t.Errorf("firer should face the target, Dir = %d", facing.Dir)
	}
	if len(f.cues.facings) != 1 || f.cues.facings[0] != -1 {
		t.Errorf("facing cues = %v", f.cues.facings)
	}
}

func TestComputeSpawnPosition(t *testing.T) {
	f := newWeaponFixture(t)
	bounds, _ := f.world.Bounds(f.player)

	left := f.ws.ComputeSpawnPosition(f.player, utils.V(-1, 0))
	if math.Abs(left.X-(bounds.Min.X-0.06)) > 1e-9 {
		t.Errorf("left spawn X = %v, want %v", left.X, bounds.Min.X-0.06)
	}

	ecs.RemoveComponent[*components.ColliderComponent](f.em, f.player)
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)
	fallback := f.ws.ComputeSpawnPosition(f.player, utils.V(0, 1))
	if math.Abs(fallback.X-pos.X) > 1e-9 || math.Abs(fallback.Y-(pos.Y+0.06)) > 1e-9 {
		t.Errorf("fallback spawn = %v, want (%v, %v)", fallback, pos.X, pos.Y+0.06)
	}
}

func TestUpdateAmmoBar(t *testing.T) {
	ammo := &components.AmmoPoolComponent{Capacity: 8, Count: 2, BarFullWidth: 0.8}
	UpdateAmmoBar(ammo)
	if ammo.Fraction != 0.25 || ammo.BarFillScaleX != 0.25 {
		t.Errorf("fraction/scale = %v/%v, want 0.25", ammo.Fraction, ammo.BarFillScaleX)
	}
	if math.Abs(ammo.BarFillOffsetX+0.3) > 1e-9 {
		t.Errorf("offset = %v, want -0.3", ammo.BarFillOffsetX)
	}
}

// TestAmmoConservation 随机输入下弹药始终在 [0, capacity]，每次成功投掷恰好扣 1
func TestAmmoConservation(t *testing.T) {
	f := newWeaponFixture(t)
	rng := rand.New(rand.NewSource(11))
	ammo := f.ammo()
	held := false

	for i := 0; i < 2000; i++ {
		in := f.input()
		f.aimRight()
		in.LightPressed = rng.Intn(3) == 0
		switch rng.Intn(4) {
		case 0:
			if !held {
				in.HeavyPressed = true
				held = true
			}
		case 1:
			if held {
				in.HeavyReleased = true
				held = false
			}
		}
		in.HeavyHeld = held

		before := ammo.Count
		beforeNext := ammo.NextRegenTime
		throwsBefore := len(f.cues.throws)

		f.tick(0.02 + rng.Float64()*0.1)

		regen := 0
		if ammo.NextRegenTime != beforeNext {
			regen = 1
		}
		thrown := len(f.cues.throws) - throwsBefore
		if ammo.Count != before+regen-thrown {
			t.Fatalf("tick %d: count %d != %d + %d - %d", i, ammo.Count, before, regen, thrown)
		}
		if ammo.Count < 0 || ammo.Count > ammo.Capacity {
			t.Fatalf("tick %d: count %d out of range", i, ammo.Count)
		}
	}
	if len(f.projectiles()) != len(f.cues.throws) {
		t.Errorf("projectiles %d != throws %d", len(f.projectiles()), len(f.cues.throws))
	}
}
