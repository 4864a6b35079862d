// Package app 提供沙盒应用的核心包装器
//
// 初始化逻辑从 main 包提取出来，桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/game"
	"github.com/decker502/alleycat/pkg/scenes"
	"github.com/decker502/alleycat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "alleycat"

// Config 应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigFile 磁盘上的战斗配置路径，为空时读取嵌入的 data/combat.yaml
	ConfigFile string
	// Seed 覆盖配置中的随机种子（0 表示不覆盖）
	Seed int64
	// Mute 禁用提示音
	Mute bool
}

// App 沙盒应用，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化沙盒应用
//
// 使用嵌入配置时，调用前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	combatConfig, err := loadCombatConfig(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("战斗配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		combatConfig.Simulation.Seed = cfg.Seed
	}

	// 偏好设置：gdata 不可用时降级为仅内存设置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage directory: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)

	// 静音时不创建音频上下文（不改写已保存的设置）
	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(game.AudioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() (game.Scene, error) {
		// 每局使用配置副本，设置只影响新开的局
		roundConfig := *combatConfig
		settingsManager.GetSettings().ApplyTo(&roundConfig)
		return scenes.NewArenaScene(&roundConfig, settingsManager, audioManager)
	})
	if err := sceneManager.Restart(); err != nil {
		return nil, fmt.Errorf("竞技场创建失败: %w", err)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

func loadCombatConfig(path string) (*config.CombatConfig, error) {
	if path != "" {
		return config.LoadCombatConfigFile(path)
	}
	return config.LoadCombatConfig(config.DefaultCombatConfigPath)
}

// Update 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.ArenaScreenWidth, scenes.ArenaScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ArenaScreenWidth, scenes.ArenaScreenHeight
}

// GetSceneManager 返回场景管理器（退出时保存用）
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// SaveOnExit 退出时保存当前场景状态
func (a *App) SaveOnExit() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !s.SaveOnExit() {
			log.Printf("[App] Warning: scene failed to save on exit")
		}
		return
	}
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// IsVerbose 是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
