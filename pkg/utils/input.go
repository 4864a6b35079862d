package utils

import (
	"github.com/decker502/alleycat/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSnapshot 本帧的指针与按键状态（屏幕坐标）
type PointerSnapshot struct {
	X, Y int

	LightJustPressed  bool // 轻投：左键 / 单指点击
	HeavyJustPressed  bool // 蓄力：右键 / 两指按下
	HeavyHeld         bool
	HeavyJustReleased bool
}

// MoveSnapshot 本帧的移动输入
type MoveSnapshot struct {
	Axis float64 // -1 向左，+1 向右
	Jump bool
}

// TouchGesture 触摸手势识别
//
// 单指按下后先挂起，抬起时才算轻投；挂起期间出现第二根手指则升级为蓄力，
// 这次触摸之后不再产生轻投。手指少于两根时蓄力松开，全部抬起后重新开始。
type TouchGesture struct {
	pending  bool // 单指已按下，尚未确定手势
	heavy    bool // 两指蓄力中
	consumed bool // 本次触摸已产生过蓄力
	lastX    int
	lastY    int
}

// Update 输入本帧的触摸点数量与第一根手指位置，返回指针快照
func (g *TouchGesture) Update(count, x, y int) PointerSnapshot {
	if count > 0 {
		g.lastX, g.lastY = x, y
	}
	s := PointerSnapshot{X: g.lastX, Y: g.lastY}

	switch {
	case count >= 2:
		if !g.heavy && !g.consumed {
			g.heavy = true
			g.consumed = true
			s.HeavyJustPressed = true
		}
		g.pending = false
	case count == 1:
		if g.heavy {
			g.heavy = false
			s.HeavyJustReleased = true
		} else if !g.consumed {
			g.pending = true
		}
	default:
		if g.heavy {
			s.HeavyJustReleased = true
		} else if g.pending {
			s.LightJustPressed = true
		}
		*g = TouchGesture{lastX: g.lastX, lastY: g.lastY}
	}
	s.HeavyHeld = g.heavy
	return s
}

// Active 是否有未结束的触摸手势
func (g *TouchGesture) Active() bool {
	return g.pending || g.heavy || g.consumed
}

// PointerPoller 从 ebiten 读取指针输入
// 同时支持鼠标与触摸：单指点击为轻投，两指按住再松开为蓄力
type PointerPoller struct {
	touch TouchGesture
}

// Poll 读取本帧指针快照
func (p *PointerPoller) Poll() PointerSnapshot {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 || p.touch.Active() {
		var x, y int
		if len(touchIDs) > 0 {
			x, y = ebiten.TouchPosition(touchIDs[0])
		}
		return p.touch.Update(len(touchIDs), x, y)
	}

	var s PointerSnapshot
	s.X, s.Y = ebiten.CursorPosition()
	s.LightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.HeavyJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.HeavyHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.HeavyJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	return s
}

// PollMove 从 ebiten 读取移动键（A/D、方向键、空格/W 跳跃）
func PollMove() MoveSnapshot {
	var m MoveSnapshot
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		m.Axis--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		m.Axis++
	}
	m.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	return m
}

// ApplyPointer 把指针快照写入武器输入组件
// 边沿标记只置位不清除（由武器系统消费后清除），瞄准点转换为世界坐标
func ApplyPointer(in *components.WeaponInputComponent, s PointerSnapshot, cam Camera) {
	if in == nil {
		return
	}
	aim := cam.ScreenToWorld(float64(s.X), float64(s.Y))
	in.AimX, in.AimY = aim.X, aim.Y

	in.LightPressed = in.LightPressed || s.LightJustPressed
	in.HeavyPressed = in.HeavyPressed || s.HeavyJustPressed
	in.HeavyReleased = in.HeavyReleased || s.HeavyJustReleased
	in.HeavyHeld = s.HeavyHeld
}
