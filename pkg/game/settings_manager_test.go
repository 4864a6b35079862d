package game

import (
	"os"
	"testing"

	"github.com/decker502/alleycat/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.RampDifficulty != nil || s.VerboseSpawnLogs != nil {
		t.Error("difficulty switches should be unset by default")
	}
	if !s.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if s.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", s.SoundVolume)
	}
}

// TestSettingsManagerNilGdata 测试降级模式
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetRampDifficulty(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().RampDifficulty != nil {
		t.Error("degraded Load() should reset to defaults")
	}
}

// TestSettingsManagerRoundTrip 测试保存后重新加载
func TestSettingsManagerRoundTrip(t *testing.T) {
	gm := openTestGdata(t, "alleycat_settings_roundtrip")

	sm := NewSettingsManager(gm)
	sm.SetRampDifficulty(true)
	sm.SetVerboseSpawnLogs(true)
	sm.SetSoundEnabled(false)
	sm.SetSoundVolume(1.7)
	sm.SetShowDebugRays(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(gm)
	s := reloaded.GetSettings()
	if s.RampDifficulty == nil || !*s.RampDifficulty || s.VerboseSpawnLogs == nil || !*s.VerboseSpawnLogs || s.SoundEnabled || !s.ShowDebugRays {
		t.Errorf("settings did not round-trip: %+v", s)
	}
	if s.SoundVolume != 1.0 {
		t.Errorf("SoundVolume should be clamped to 1.0, got %v", s.SoundVolume)
	}
}

// TestSettingsManagerCorruptData 测试损坏数据回退到默认
func TestSettingsManagerCorruptData(t *testing.T) {
	gm := openTestGdata(t, "alleycat_settings_corrupt")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("rampDifficulty: [oops")); err != nil {
		t.Fatalf("failed to seed corrupt data: %v", err)
	}

	sm := &SettingsManager{gdataManager: gm, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("expected unmarshal error")
	}
	if sm.GetSettings().RampDifficulty != nil {
		t.Error("corrupt data should fall back to defaults")
	}
}

func boolPtr(v bool) *bool { return &v }

// TestApplyTo 只有切换过的偏好才覆盖配置文件
func TestApplyTo(t *testing.T) {
	tests := []struct {
		name        string
		configRamp  bool
		ramp        *bool
		verbose     *bool
		wantRamp    bool
		wantVerbose bool
	}{
		{"unset keeps config on", true, nil, nil, true, false},
		{"unset keeps config off", false, nil, nil, false, false},
		{"preference turns ramp on", false, boolPtr(true), nil, true, false},
		{"preference turns ramp off", true, boolPtr(false), boolPtr(true), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultCombatConfig()
			cfg.Spawner.RampDifficulty = tt.configRamp

			s := DefaultSettings()
			s.RampDifficulty = tt.ramp
			s.VerboseSpawnLogs = tt.verbose
			s.ApplyTo(cfg)

			if cfg.Spawner.RampDifficulty != tt.wantRamp {
				t.Errorf("RampDifficulty = %v, want %v", cfg.Spawner.RampDifficulty, tt.wantRamp)
			}
			if cfg.Spawner.VerboseLogs != tt.wantVerbose {
				t.Errorf("VerboseLogs = %v, want %v", cfg.Spawner.VerboseLogs, tt.wantVerbose)
			}
			if s.RampEnabled(cfg) != tt.wantRamp {
				t.Errorf("RampEnabled() = %v, want %v", s.RampEnabled(cfg), tt.wantRamp)
			}
		})
	}
}

// TestApplyToConfigFile 配置文件里开启的难度递增不会被默认偏好关掉
func TestApplyToConfigFile(t *testing.T) {
	cfg, err := config.ParseCombatConfig([]byte("spawner:\n  rampDifficulty: true\n"))
	if err != nil {
		t.Fatalf("ParseCombatConfig() error = %v", err)
	}

	NewSettingsManager(nil).GetSettings().ApplyTo(cfg)
	if !cfg.Spawner.RampDifficulty {
		t.Error("rampDifficulty from the config file was overwritten")
	}
}

func TestApplyToRestoresRampPeriod(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	cfg.Spawner.RampEverySeconds = 0

	s := DefaultSettings()
	s.RampDifficulty = boolPtr(true)
	s.ApplyTo(cfg)

	if cfg.Spawner.RampEverySeconds != 20 {
		t.Errorf("expected ramp period restored to 20, got %v", cfg.Spawner.RampEverySeconds)
	}
	s.ApplyTo(nil)
}
