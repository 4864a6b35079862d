package systems

import (
	"image/color"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	ColorBackground = color.RGBA{R: 28, G: 30, B: 42, A: 255}
	ColorGround     = color.RGBA{R: 90, G: 84, B: 72, A: 255}
	ColorPlayer     = color.RGBA{R: 240, G: 180, B: 60, A: 255}
	ColorGuardIdle  = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	ColorGuardChase = color.RGBA{R: 110, G: 140, B: 230, A: 255}
	ColorGuardHit   = color.RGBA{R: 220, G: 70, B: 70, A: 255}
	ColorCat        = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	ColorOther      = color.RGBA{R: 230, G: 230, B: 230, A: 255}

	colorAmmoBack = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	colorAmmoFill = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	colorCharge   = color.RGBA{R: 255, G: 120, B: 40, A: 255}
	colorDebugRay = color.RGBA{R: 255, G: 255, B: 0, A: 90}
)

// 头顶状态条尺寸（世界单位）
const (
	barGap    = 0.25
	barHeight = 0.1
)

// BoundsSource 提供碰撞体的世界包围盒，physics.World 实现了它
type BoundsSource interface {
	Bounds(id ecs.EntityID) (physics.AABB, bool)
}

// WeaponBars 武器实体头顶的弹药条与蓄力条几何（世界坐标）
type WeaponBars struct {
	Back     physics.AABB // 弹药条底框
	Fill     physics.AABB // 弹药填充：本地缩放 = Fraction，本地偏移 = BarFillOffsetX
	Charge   physics.AABB // 蓄力进度
	Charging bool         // 是否正在蓄力（为 false 时不绘制 Charge）
}

// RenderSystem 用矢量图形绘制战斗世界
//
// 每个碰撞体画成按层着色的矩形，受击闪烁时向白色混合；
// 武器实体头顶画弹药条和蓄力条；调试模式下画生成射线与出生点占用半径。
// HUD 文字由场景自己绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	bounds        BoundsSource
	camera        utils.Camera
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, bounds BoundsSource, camera utils.Camera) *RenderSystem {
	requireCollaborators("RenderSystem", map[string]any{"entityManager": em, "bounds": bounds})
	return &RenderSystem{
		entityManager: em,
		bounds:        bounds,
		camera:        camera,
	}
}

// Camera 返回当前摄像机
func (s *RenderSystem) Camera() utils.Camera {
	return s.camera
}

// SetCamera 替换摄像机
func (s *RenderSystem) SetCamera(camera utils.Camera) {
	s.camera = camera
}

// Draw 绘制整个世界
// 顺序：背景 → 调试层 → 碰撞体 → 武器状态条
func (s *RenderSystem) Draw(screen *ebiten.Image, debug bool) {
	screen.Fill(ColorBackground)

	if debug {
		for _, id := range ecs.GetEntitiesWith1[*components.SpawnerComponent](s.entityManager) {
			s.drawSpawnerDebug(screen, id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ColliderComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		s.drawCollider(screen, id)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.AmmoPoolComponent, *components.ChargeComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		bars, ok := s.WeaponBars(id)
		if !ok {
			continue
		}
		s.fillBox(screen, bars.Back, colorAmmoBack)
		s.fillBox(screen, bars.Fill, colorAmmoFill)
		if bars.Charging {
			s.fillBox(screen, bars.Charge, colorCharge)
		}
	}
}

// ColliderColor 碰撞体的显示颜色（已混合受击闪烁）
func (s *RenderSystem) ColliderColor(id ecs.EntityID) color.RGBA {
	col, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
	if !ok {
		return ColorOther
	}

	var clr color.RGBA
	switch col.Layer {
	case types.LayerGround:
		clr = ColorGround
	case types.LayerPlayer:
		clr = ColorPlayer
	case types.LayerProjectile:
		clr = ColorCat
	case types.LayerEnemy:
		clr = ColorGuardIdle
		if guard, ok := ecs.GetComponent[*components.GuardComponent](s.entityManager, id); ok {
			switch guard.State {
			case components.GuardChasing:
				clr = ColorGuardChase
			case components.GuardAttacking:
				clr = ColorGuardHit
			}
		}
	default:
		clr = ColorOther
	}
	return BlendWhite(clr, FlashAmount(s.entityManager, id))
}

// WeaponBars 计算武器实体头顶状态条的世界坐标
// 实体没有碰撞体或弹药池时返回 false
func (s *RenderSystem) WeaponBars(id ecs.EntityID) (WeaponBars, bool) {
	box, ok := s.bounds.Bounds(id)
	if !ok {
		return WeaponBars{}, false
	}
	ammo, ok := ecs.GetComponent[*components.AmmoPoolComponent](s.entityManager, id)
	if !ok {
		return WeaponBars{}, false
	}

	top := box.Max.Y + barGap
	center := box.Center().X
	half := ammo.BarFullWidth / 2

	fillCenter := center + ammo.BarFillOffsetX
	fillHalf := half * ammo.BarFillScaleX
	bars := WeaponBars{
		Back: physics.AABB{Min: utils.V(center-half, top), Max: utils.V(center+half, top+barHeight)},
		Fill: physics.AABB{Min: utils.V(fillCenter-fillHalf, top), Max: utils.V(fillCenter+fillHalf, top+barHeight)},
	}

	charge, cok := ecs.GetComponent[*components.ChargeComponent](s.entityManager, id)
	weapon, wok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if cok && wok && charge.State == components.ChargeCharging && weapon.MaxChargeTime > 0 {
		f := utils.Clamp01(charge.Seconds / weapon.MaxChargeTime)
		bars.Charging = true
		bars.Charge = physics.AABB{
			Min: utils.V(center-half, top+barHeight*1.5),
			Max: utils.V(center-half+2*half*f, top+barHeight*2.5),
		}
	}
	return bars, true
}

func (s *RenderSystem) drawCollider(screen *ebiten.Image, id ecs.EntityID) {
	box, ok := s.bounds.Bounds(id)
	if !ok {
		return
	}
	s.fillBox(screen, box, s.ColliderColor(id))

	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok {
		c := box.Center()
		eyeX := c.X + float64(facing.Dir)*(box.Max.X-c.X)*0.6
		ex, ey := s.camera.WorldToScreen(utils.V(eyeX, c.Y+(box.Max.Y-c.Y)*0.5))
		vector.DrawFilledCircle(screen, float32(ex), float32(ey), 2, color.Black, true)
	}
}

// drawSpawnerDebug 生成射线（竖线）与守卫出生占用半径
func (s *RenderSystem) drawSpawnerDebug(screen *ebiten.Image, id ecs.EntityID) {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return
	}

	drawRay := func(x float64) {
		x0, y0 := s.camera.WorldToScreen(utils.V(x, sp.RaycastTopY))
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x0), float32(s.camera.ScreenHeight), 1, colorDebugRay, false)
	}
	if sp.UseSpawnPoints && len(sp.SpawnPoints) > 0 {
		for _, p := range sp.SpawnPoints {
			if p.Valid {
				drawRay(p.X)
			}
		}
	} else {
		drawRay(sp.RandomXMin)
		drawRay(sp.RandomXMax)
	}

	for _, guard := range ecs.GetEntitiesWith1[*components.GuardComponent](s.entityManager) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, guard)
		if !ok {
			continue
		}
		cx, cy := s.camera.WorldToScreen(utils.V(pos.X, pos.Y))
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(s.camera.WorldLength(sp.ClearRadius)), 1, colorDebugRay, true)
	}
}

func (s *RenderSystem) fillBox(screen *ebiten.Image, box physics.AABB, clr color.Color) {
	x0, y0 := s.camera.WorldToScreen(utils.V(box.Min.X, box.Max.Y))
	x1, y1 := s.camera.WorldToScreen(utils.V(box.Max.X, box.Min.Y))
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), clr, false)
}

// BlendWhite 按闪烁强度向白色混合
func BlendWhite(c color.RGBA, amount float64) color.RGBA {
	amount = utils.Clamp01(amount)
	if amount == 0 {
		return c
	}
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount)
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
