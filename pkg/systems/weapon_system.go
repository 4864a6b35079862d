package systems

import (
	"log"
	"math"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/utils"
)

// aimEpsilon 瞄准向量长度平方低于此值时视为无方向
const aimEpsilon = 1e-6

// ProjectileSpawner 投射物实例化协作者（entities.Factory 实现）
type ProjectileSpawner interface {
	HasTemplate(name string) bool
	SpawnProjectile(req entities.ProjectileSpawn) (ecs.EntityID, error)
}

// WeaponSystem 玩家投掷武器
//
// 两件事共用一个弹药池：
//   - 弹药恢复：每帧最多恢复一发（固定速率，不补发错过的间隔）
//   - 投掷：轻投（按下即投）与蓄力投（按住蓄力，松开投出）
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	clock         TimeSource
	query         physics.SpatialQuery
	spawner       ProjectileSpawner
	cues          CueSink
	verbose       bool
}

// NewWeaponSystem 创建武器系统
func NewWeaponSystem(em *ecs.EntityManager, clock TimeSource, query physics.SpatialQuery, spawner ProjectileSpawner, cues CueSink) *WeaponSystem {
	requireCollaborators("WeaponSystem", map[string]any{
		"entityManager": em,
		"clock":         clock,
		"query":         query,
		"spawner":       spawner,
		"cues":          cues,
	})
	return &WeaponSystem{
		entityManager: em,
		clock:         clock,
		query:         query,
		spawner:       spawner,
		cues:          cues,
	}
}

// SetVerbose 开关投掷日志
func (s *WeaponSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 更新所有武器：弹药恢复、轻投、蓄力状态机，最后清除本帧输入边沿
func (s *WeaponSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.WeaponComponent, *components.AmmoPoolComponent, *components.ChargeComponent](s.entityManager)

	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		weapon, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
		ammo, _ := ecs.GetComponent[*components.AmmoPoolComponent](s.entityManager, id)
		charge, _ := ecs.GetComponent[*components.ChargeComponent](s.entityManager, id)

		s.regenerate(id, ammo)

		input, ok := ecs.GetComponent[*components.WeaponInputComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if weapon.Enabled {
			aim := utils.V(input.AimX, input.AimY)
			if input.LightPressed {
				s.fire(id, aim, weapon.LightThrowSpeed, components.ThrowLight)
			}
			s.updateCharge(id, weapon, charge, input, deltaTime)
		}

		input.LightPressed = false
		input.HeavyPressed = false
		input.HeavyReleased = false
	}
}

// regenerate 固定速率恢复弹药
func (s *WeaponSystem) regenerate(id ecs.EntityID, ammo *components.AmmoPoolComponent) {
	now := s.clock.Now()
	if ammo.Count < ammo.Capacity && reached(now, ammo.NextRegenTime) {
		ammo.Count++
		ammo.NextRegenTime = now + ammo.RegenInterval
		s.refreshAmmo(id, ammo)
	}
}

// updateCharge 蓄力状态机
//
//	Idle --按下--> Charging（蓄力清零）
//	Charging 按住：累加蓄力，上限 MaxChargeTime
//	Charging --松开，或未按住且已有蓄力--> Idle 并结算投掷
//	Charging 未按住且蓄力为 0：视为取消，回到 Idle 不投掷
func (s *WeaponSystem) updateCharge(id ecs.EntityID, weapon *components.WeaponComponent, charge *components.ChargeComponent, input *components.WeaponInputComponent, dt float64) {
	if charge.State == components.ChargeIdle && input.HeavyPressed {
		charge.State = components.ChargeCharging
		charge.Seconds = 0
		s.cues.Charging(id, true)
	}
	if charge.State != components.ChargeCharging {
		return
	}

	if input.HeavyHeld && !input.HeavyReleased {
		charge.Seconds = math.Min(charge.Seconds+dt, weapon.MaxChargeTime)
	}

	released := input.HeavyReleased || (!input.HeavyHeld && charge.Seconds > 0)
	cancelled := !input.HeavyHeld && !released
	if !released && !cancelled {
		return
	}

	seconds := charge.Seconds
	charge.State = components.ChargeIdle
	charge.Seconds = 0
	s.cues.Charging(id, false)

	if released {
		speed := s.ChargedSpeed(id, seconds)
		if !s.fire(id, utils.V(input.AimX, input.AimY), speed, components.ThrowHeavy) && s.verbose {
			log.Printf("[WeaponSystem] Entity %d charge of %.2fs discarded (cannot fire)", id, seconds)
		}
	}
}

// ChargedSpeed 蓄力时长对应的投掷速度，随蓄力单调不减，封顶 ChargedMaxSpeed
func (s *WeaponSystem) ChargedSpeed(id ecs.EntityID, seconds float64) float64 {
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return ChargedSpeedFor(weapon, seconds)
}

// ChargedSpeedFor 按武器配置计算蓄力速度
func ChargedSpeedFor(weapon *components.WeaponComponent, seconds float64) float64 {
	t := 1.0
	if weapon.MaxChargeTime > 0 {
		t = utils.Clamp01(seconds / weapon.MaxChargeTime)
	}
	return utils.Lerp(weapon.ChargedMinSpeed, weapon.ChargedMaxSpeed, t)
}

// CanFire 冷却已过、有弹药、投射物模板可用
func (s *WeaponSystem) CanFire(id ecs.EntityID) bool {
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok || !weapon.Enabled {
		return false
	}
	ammo, ok := ecs.GetComponent[*components.AmmoPoolComponent](s.entityManager, id)
	if !ok || ammo.Count <= 0 {
		return false
	}
	if !reached(s.clock.Now(), weapon.LastThrowTime+weapon.ThrowCooldown) {
		return false
	}
	return weapon.ProjectileTemplate != "" && s.spawner.HasTemplate(weapon.ProjectileTemplate)
}

// fire 尝试投出一只猫，成功时扣一发弹药
// 投射物先创建，创建失败不会扣弹药
func (s *WeaponSystem) fire(id ecs.EntityID, target utils.Vec2, speed float64, kind components.ThrowKind) bool {
	if !s.CanFire(id) {
		return false
	}
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	ammo, _ := ecs.GetComponent[*components.AmmoPoolComponent](s.entityManager, id)

	dir := s.AimDirection(id, target)
	spawnPos := s.ComputeSpawnPosition(id, dir)
	ownerColliders := s.colliderTree(id)

	projectile, err := s.spawner.SpawnProjectile(entities.ProjectileSpawn{
		Template:   weapon.ProjectileTemplate,
		Owner:      id,
		Position:   spawnPos,
		Velocity:   dir.Scale(speed),
		Kind:       kind,
		Exclusions: ownerColliders,
	})
	if err != nil {
		log.Printf("[WeaponSystem] Entity %d failed to spawn projectile: %v", id, err)
		return false
	}

	for _, oc := range ownerColliders {
		for _, pc := range s.colliderTree(projectile) {
			s.query.IgnoreCollisionPair(oc, pc)
		}
	}

	ammo.Count--
	weapon.LastThrowTime = s.clock.Now()
	s.refreshAmmo(id, ammo)
	s.cues.Throw(id, kind)

	if s.verbose {
		log.Printf("[WeaponSystem] Entity %d threw %s cat %d at speed %.2f, ammo %d/%d",
			id, kind, projectile, speed, ammo.Count, ammo.Capacity)
	}
	return true
}

// colliderTree 实体自身及其子实体中带碰撞体的实体
func (s *WeaponSystem) colliderTree(id ecs.EntityID) []ecs.EntityID {
	var result []ecs.EntityID
	if ecs.HasComponent[*components.ColliderComponent](s.entityManager, id) {
		result = append(result, id)
	}
	for _, child := range s.entityManager.Children(id) {
		result = append(result, s.colliderTree(child)...)
	}
	return result
}

// AimDirection 从发射者指向目标点的单位向量，退化时取向右
// 同时让发射者水平朝向目标
func (s *WeaponSystem) AimDirection(id ecs.EntityID, target utils.Vec2) utils.Vec2 {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Right
	}
	dir := target.Sub(utils.V(pos.X, pos.Y))
	if dir.LenSq() < aimEpsilon {
		return utils.Right
	}
	dir = dir.Normalized()

	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok && dir.X != 0 {
		newDir := utils.SignOrPositive(dir.X)
		if facing.Dir != newDir {
			facing.Dir = newDir
			s.cues.Facing(id, newDir)
		}
	}
	return dir
}

// ComputeSpawnPosition 投射物出生点
// 有碰撞体时取身体包围盒靠瞄准一侧的边缘外 SpawnEdgePadding，高度为中心加 SpawnYOffset；
// 没有碰撞体时取 位置 + 方向*SpawnEdgePadding
func (s *WeaponSystem) ComputeSpawnPosition(id ecs.EntityID, dir utils.Vec2) utils.Vec2 {
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}
	}

	col, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
	if !ok {
		return utils.V(pos.X, pos.Y).Add(dir.Scale(weapon.SpawnEdgePadding))
	}

	bounds := physics.BoundsOf(pos, col)
	x := bounds.Max.X + weapon.SpawnEdgePadding
	if dir.X < 0 {
		x = bounds.Min.X - weapon.SpawnEdgePadding
	}
	return utils.V(x, bounds.Center().Y+weapon.SpawnYOffset)
}

// SetEnabled 启用/禁用武器
// 禁用时强制回到 Idle 并关闭蓄力信号
func (s *WeaponSystem) SetEnabled(id ecs.EntityID, enabled bool) {
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok {
		return
	}
	weapon.Enabled = enabled
	if enabled {
		return
	}
	if charge, ok := ecs.GetComponent[*components.ChargeComponent](s.entityManager, id); ok {
		charge.State = components.ChargeIdle
		charge.Seconds = 0
	}
	if input, ok := ecs.GetComponent[*components.WeaponInputComponent](s.entityManager, id); ok {
		*input = components.WeaponInputComponent{AimX: input.AimX, AimY: input.AimY}
	}
	s.cues.Charging(id, false)
}

// refreshAmmo 弹药变化后重新计算比例与弹药条几何
func (s *WeaponSystem) refreshAmmo(id ecs.EntityID, ammo *components.AmmoPoolComponent) {
	UpdateAmmoBar(ammo)
	s.cues.AmmoFraction(id, ammo.Fraction)
}

// UpdateAmmoBar 弹药比例 = Count/Capacity，填充条左对齐缩放
func UpdateAmmoBar(ammo *components.AmmoPoolComponent) {
	if ammo.Capacity <= 0 {
		ammo.Fraction = 0
	} else {
		ammo.Fraction = float64(ammo.Count) / float64(ammo.Capacity)
	}
	ammo.BarFillScaleX = ammo.Fraction
	ammo.BarFillOffsetX = -(1 - ammo.Fraction) * ammo.BarFullWidth * 0.5
}
