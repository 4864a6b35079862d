package game

import (
	"fmt"
	"log"

	"github.com/decker502/alleycat/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好设置
// 难度与日志开关为 nil 时沿用战斗配置，只有玩家切换过才覆盖
type GameSettings struct {
	// 难度
	RampDifficulty   *bool `yaml:"rampDifficulty,omitempty"`   // 是否随时间增加每波数量
	VerboseSpawnLogs *bool `yaml:"verboseSpawnLogs,omitempty"` // 生成器详细日志

	// 反馈
	SoundEnabled bool    `yaml:"soundEnabled"` // 提示音开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 提示音音量 0.0 ~ 1.0

	// 调试显示
	ShowDebugRays bool `yaml:"showDebugRays"` // 绘制地面射线与清空半径
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundEnabled:  true,
		SoundVolume:   0.8,
		ShowDebugRays: false,
	}
}

// ApplyTo 将玩家切换过的偏好写入战斗配置，未设置的项保持配置文件的值
func (s *GameSettings) ApplyTo(cfg *config.CombatConfig) {
	if cfg == nil {
		return
	}
	if s.RampDifficulty != nil {
		if *s.RampDifficulty != cfg.Spawner.RampDifficulty {
			log.Printf("[SettingsManager] rampDifficulty=%v overrides config value %v", *s.RampDifficulty, cfg.Spawner.RampDifficulty)
		}
		cfg.Spawner.RampDifficulty = *s.RampDifficulty
	}
	if s.VerboseSpawnLogs != nil {
		cfg.Spawner.VerboseLogs = *s.VerboseSpawnLogs
	}
	if cfg.Spawner.RampDifficulty && cfg.Spawner.RampEverySeconds <= 0 {
		cfg.Spawner.RampEverySeconds = config.DefaultCombatConfig().Spawner.RampEverySeconds
	}
}

// RampEnabled 难度递增的实际取值：已设置时用偏好，否则用配置
func (s *GameSettings) RampEnabled(cfg *config.CombatConfig) bool {
	if s.RampDifficulty != nil {
		return *s.RampDifficulty
	}
	return cfg != nil && cfg.Spawner.RampDifficulty
}

// VerboseEnabled 详细日志的实际取值
func (s *GameSettings) VerboseEnabled(cfg *config.CombatConfig) bool {
	if s.VerboseSpawnLogs != nil {
		return *s.VerboseSpawnLogs
	}
	return cfg != nil && cfg.Spawner.VerboseLogs
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "arena"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不影响创建，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时不报错
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetRampDifficulty 设置难度递增开关（需调用 Save() 持久化）
func (sm *SettingsManager) SetRampDifficulty(enabled bool) {
	sm.settings.RampDifficulty = &enabled
}

// SetVerboseSpawnLogs 设置生成器详细日志开关
func (sm *SettingsManager) SetVerboseSpawnLogs(enabled bool) {
	sm.settings.VerboseSpawnLogs = &enabled
}

// SetSoundEnabled 设置提示音开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置提示音音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetShowDebugRays 设置调试射线显示
func (sm *SettingsManager) SetShowDebugRays(enabled bool) {
	sm.settings.ShowDebugRays = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
