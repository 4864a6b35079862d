package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/scenes"
	"github.com/decker502/alleycat/pkg/systems"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// 每个世界单位占 2 列；终端字符高约为宽的两倍，所以纵向 1 行 = 半个单位
const cellsPerUnit = 2

var (
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleIdle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleChase  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleAttack = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCat    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleAmmo   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCharge = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// view 世界坐标与终端格子的映射
// 内部用纵向加倍的虚拟屏幕，使横纵单位在视觉上等长
type view struct {
	width, height int
	camera        utils.Camera
}

func newView(width, height int) *view {
	return &view{
		width:  width,
		height: height,
		camera: utils.NewCamera(utils.V(0, 4), cellsPerUnit, width, height*2),
	}
}

func (v *view) worldToCell(p utils.Vec2) (int, int) {
	sx, sy := v.camera.WorldToScreen(p)
	return int(math.Floor(sx)), int(math.Floor(sy / 2))
}

func (v *view) cellToWorld(col, row int) utils.Vec2 {
	return v.camera.ScreenToWorld(float64(col)+0.5, (float64(row)+0.5)*2)
}

func (v *view) fillBox(screen tcell.Screen, box physics.AABB, r rune, style tcell.Style) {
	x0, y0 := v.worldToCell(utils.V(box.Min.X, box.Max.Y))
	x1, y1 := v.worldToCell(utils.V(box.Max.X, box.Min.Y))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := max(y0, 0); y < min(y1, v.height); y++ {
		for x := max(x0, 0); x < min(x1, v.width); x++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (v *view) text(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i >= v.width {
			return
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *view) draw(screen tcell.Screen, arena *scenes.Arena, keyCharging bool) {
	screen.Clear()
	em := arena.EntityManager()

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ColliderComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		box, ok := arena.World().Bounds(id)
		if !ok {
			continue
		}
		r, style := glyphFor(em, id)
		if systems.FlashAmount(em, id) > 0 {
			style = style.Reverse(true)
		}
		v.fillBox(screen, box, r, style)
	}

	v.drawHUD(screen, arena, keyCharging)
	screen.Show()
}

func glyphFor(em *ecs.EntityManager, id ecs.EntityID) (rune, tcell.Style) {
	col, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
	switch col.Layer {
	case types.LayerGround:
		return '▓', styleGround
	case types.LayerPlayer:
		return '@', stylePlayer
	case types.LayerProjectile:
		return 'o', styleCat
	case types.LayerEnemy:
		guard, ok := ecs.GetComponent[*components.GuardComponent](em, id)
		if !ok {
			return 'G', styleIdle
		}
		switch guard.State {
		case components.GuardChasing:
			return 'G', styleChase
		case components.GuardAttacking:
			return 'G', styleAttack
		}
		return 'G', styleIdle
	}
	return '?', styleHUD
}

func (v *view) drawHUD(screen tcell.Screen, arena *scenes.Arena, keyCharging bool) {
	v.text(screen, 0, 0, arena.Stats().String(), styleHUD)

	em := arena.EntityManager()
	player := arena.Player()
	if arena.PlayerDead() {
		v.text(screen, 0, 1, "You were caught. r = restart, q = quit", styleAttack)
		return
	}

	hp, maxHP, _ := arena.Health().HitPoints(player)
	line := fmt.Sprintf("HP %d/%d ", hp, maxHP)
	v.text(screen, 0, 1, line, styleHUD)
	x := len(line)

	if ammo, ok := ecs.GetComponent[*components.AmmoPoolComponent](em, player); ok {
		bar := strings.Repeat("■", ammo.Count) + strings.Repeat("□", ammo.Capacity-ammo.Count)
		v.text(screen, x, 1, bar, styleAmmo)
		x += ammo.Capacity + 1
	}
	charge, cok := ecs.GetComponent[*components.ChargeComponent](em, player)
	weapon, wok := ecs.GetComponent[*components.WeaponComponent](em, player)
	if cok && wok && charge.State == components.ChargeCharging {
		speed := systems.ChargedSpeedFor(weapon, charge.Seconds)
		label := fmt.Sprintf("charge %.1fs -> %.1f u/s", charge.Seconds, speed)
		if keyCharging {
			label += " (j to release)"
		}
		v.text(screen, x, 1, label, styleCharge)
	}
	if wok && !weapon.Enabled {
		v.text(screen, x, 1, "weapon disabled", styleAttack)
	}
}
