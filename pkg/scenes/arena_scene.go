package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/game"
	"github.com/decker502/alleycat/pkg/systems"
	"github.com/decker502/alleycat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 沙盒画面尺寸
const (
	ArenaScreenWidth   = 960
	ArenaScreenHeight  = 540
	arenaPixelsPerUnit = 32
)

var colorHUD = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// ArenaScene ebiten 沙盒场景
// 读取鼠标键盘写入玩家输入，推进 Arena，并用矢量图形绘制世界
type ArenaScene struct {
	arena    *Arena
	camera   utils.Camera
	render   *systems.RenderSystem
	hudFace  *text.GoXFace
	settings *game.SettingsManager
	pointer  utils.PointerPoller

	restart bool
}

// NewArenaScene 创建沙盒场景
// settings 可为 nil；cues 为额外的表现层信号（例如音频）
func NewArenaScene(cfg *config.CombatConfig, settings *game.SettingsManager, cues systems.CueSink) (*ArenaScene, error) {
	arena, err := NewArena(cfg, ArenaOptions{Cues: cues})
	if err != nil {
		return nil, err
	}
	camera := utils.NewCamera(utils.V(0, 4), arenaPixelsPerUnit, ArenaScreenWidth, ArenaScreenHeight)
	return &ArenaScene{
		arena:    arena,
		camera:   camera,
		render:   systems.NewRenderSystem(arena.EntityManager(), arena.World(), camera),
		hudFace:  text.NewGoXFace(basicfont.Face7x13),
		settings: settings,
	}, nil
}

// Arena 返回底层模拟
func (s *ArenaScene) Arena() *Arena {
	return s.arena
}

// WantsRestart 玩家死亡后按 R 请求重开
func (s *ArenaScene) WantsRestart() bool {
	return s.restart
}

// SaveOnExit 退出时保存偏好设置
func (s *ArenaScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[ArenaScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// Update 处理输入并推进一帧
func (s *ArenaScene) Update(deltaTime float64) {
	s.handleHotkeys()

	pointer := s.pointer.Poll()
	utils.ApplyPointer(s.arena.PlayerInput(), pointer, s.camera)
	move := utils.PollMove()
	s.arena.MovePlayer(move.Axis, move.Jump)

	s.arena.Tick(deltaTime)
}

func (s *ArenaScene) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		x, y := ebiten.CursorPosition()
		at := s.camera.ScreenToWorld(float64(x), float64(y))
		if _, err := s.arena.SpawnGuardAt(at.X, at.Y); err != nil {
			log.Printf("[ArenaScene] Manual spawn failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		player := s.arena.Player()
		weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.arena.EntityManager(), player)
		if ok {
			s.arena.Weapons().SetEnabled(player, !weapon.Enabled)
		}
	}
	if s.arena.PlayerDead() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.restart = true
	}
	s.handleSettingsHotkeys()
}

// handleSettingsHotkeys 偏好开关：立即作用于本局并保存
//
//	F1 调试射线  F2 难度递增  F3 详细日志  M 提示音  -/= 音量
func (s *ArenaScene) handleSettingsHotkeys() {
	if s.settings == nil {
		return
	}
	current := s.settings.GetSettings()
	changed := false

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.settings.SetShowDebugRays(!current.ShowDebugRays)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		ramp := !current.RampEnabled(s.arena.Config())
		s.settings.SetRampDifficulty(ramp)
		s.arena.SetRampDifficulty(ramp)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		verbose := !current.VerboseEnabled(s.arena.Config())
		s.settings.SetVerboseSpawnLogs(verbose)
		s.arena.SetVerboseLogs(verbose)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.settings.SetSoundEnabled(!current.SoundEnabled)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		s.settings.SetSoundVolume(current.SoundVolume - 0.1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		s.settings.SetSoundVolume(current.SoundVolume + 0.1)
		changed = true
	}

	if changed {
		if err := s.settings.Save(); err != nil {
			log.Printf("[ArenaScene] Warning: failed to save settings: %v", err)
		}
	}
}

// Draw 绘制世界与 HUD
func (s *ArenaScene) Draw(screen *ebiten.Image) {
	debug := s.settings != nil && s.settings.GetSettings().ShowDebugRays
	s.render.Draw(screen, debug)
	s.drawHUD(screen)
}

func (s *ArenaScene) drawHUD(screen *ebiten.Image) {
	em := s.arena.EntityManager()
	lines := []string{s.arena.Stats().String()}

	if hp, maxHP, ok := s.arena.Health().HitPoints(s.arena.Player()); ok {
		ammo, _ := ecs.GetComponent[*components.AmmoPoolComponent](em, s.arena.Player())
		ammoText := "-"
		if ammo != nil {
			ammoText = fmt.Sprintf("%d/%d", ammo.Count, ammo.Capacity)
		}
		lines = append(lines, fmt.Sprintf("HP %d/%d  ammo %s", hp, maxHP, ammoText))
	}
	if s.settings != nil {
		prefs := s.settings.GetSettings()
		lines = append(lines, fmt.Sprintf("ramp=%v logs=%v sound=%v vol=%.1f",
			s.arena.Config().Spawner.RampDifficulty, s.arena.Config().Spawner.VerboseLogs, prefs.SoundEnabled, prefs.SoundVolume))
	}
	st := s.arena.SpawnerStats()
	lines = append(lines, fmt.Sprintf("bursts=%d failed=%d rays<=%d overlaps<=%d",
		st.Bursts, st.FailedPlacements, st.MaxAttemptRaycasts, st.MaxAttemptOverlaps))
	if s.arena.PlayerDead() {
		lines = append(lines, "You were caught. Press R to restart.")
	} else if utils.IsMobile() {
		lines = append(lines, "tap: throw  two-finger hold/release: charge")
	} else {
		lines = append(lines, "LMB throw  RMB hold/release charge  A/D move  Space jump  G spawn  E weapon")
		lines = append(lines, "F1 rays  F2 ramp  F3 logs  M sound  -/= volume")
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, float64(10+i*16))
		op.ColorScale.ScaleWithColor(colorHUD)
		text.Draw(screen, line, s.hudFace, op)
	}
}
