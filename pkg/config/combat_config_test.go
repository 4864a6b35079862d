package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/alleycat/pkg/embedded"
	"github.com/decker502/alleycat/pkg/types"
)

func TestDefaultCombatConfigIsValid(t *testing.T) {
	cfg := DefaultCombatConfig()
	cfg.normalize()
	if err := validateCombatConfig(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Weapon.MaxAmmo != 8 || cfg.Weapon.ReloadSpeed != 0.5 {
		t.Errorf("unexpected ammo defaults: %+v", cfg.Weapon)
	}
	if cfg.Spawner.GroundRayMaxTries != 8 || cfg.Spawner.ClearSpotMaxTries != 6 {
		t.Errorf("unexpected spawner try defaults: %+v", cfg.Spawner)
	}
	if Mask(cfg.Spawner.BlockLayers).Contains(types.LayerGround) {
		t.Error("default block layers must not include ground")
	}
}

func TestParseCombatConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *CombatConfig)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if cfg.Guard.MoveSpeed != 4.5 {
					t.Errorf("expected guard moveSpeed 4.5, got %v", cfg.Guard.MoveSpeed)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
weapon:
  maxAmmo: 3
spawner:
  burstCount: 2
  rampDifficulty: true
`,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if cfg.Weapon.MaxAmmo != 3 {
					t.Errorf("expected maxAmmo 3, got %d", cfg.Weapon.MaxAmmo)
				}
				if cfg.Weapon.LightThrowSpeed != 14 {
					t.Errorf("untouched field should keep default, got %v", cfg.Weapon.LightThrowSpeed)
				}
				if !cfg.Spawner.RampDifficulty || cfg.Spawner.BurstCount != 2 {
					t.Errorf("spawner overrides not applied: %+v", cfg.Spawner)
				}
			},
		},
		{
			name: "reversed range is swapped",
			yamlContent: `
spawner:
  randomXRange: [5, -5]
`,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if cfg.Spawner.RandomXRange != [2]float64{-5, 5} {
					t.Errorf("expected swapped range, got %v", cfg.Spawner.RandomXRange)
				}
			},
		},
		{
			name: "negative tries clamp to zero",
			yamlContent: `
spawner:
  groundRayMaxTries: -3
  clearSpotMaxTries: -1
`,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if cfg.Spawner.GroundRayMaxTries != 0 || cfg.Spawner.ClearSpotMaxTries != 0 {
					t.Errorf("expected zero tries, got %d/%d", cfg.Spawner.GroundRayMaxTries, cfg.Spawner.ClearSpotMaxTries)
				}
			},
		},
		{
			name: "max burst raised to burst count",
			yamlContent: `
spawner:
  burstCount: 10
  maxBurst: 4
`,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if cfg.Spawner.MaxBurst != 10 {
					t.Errorf("expected maxBurst 10, got %d", cfg.Spawner.MaxBurst)
				}
			},
		},
		{
			name: "null spawn point slot",
			yamlContent: `
spawner:
  spawnPoints: [-4, null, 4]
`,
			validate: func(t *testing.T, cfg *CombatConfig) {
				if len(cfg.Spawner.SpawnPoints) != 3 {
					t.Fatalf("expected 3 slots, got %d", len(cfg.Spawner.SpawnPoints))
				}
				if cfg.Spawner.SpawnPoints[1] != nil {
					t.Error("expected middle slot to be nil")
				}
				if cfg.Spawner.SpawnPoints[2] == nil || *cfg.Spawner.SpawnPoints[2] != 4 {
					t.Error("expected last slot to be 4")
				}
			},
		},
		{
			name: "unknown layer",
			yamlContent: `
guard:
  targetLayers: [player, ghosts]
`,
			wantErr:     true,
			errContains: "guard.targetLayers",
		},
		{
			name: "zero ammo",
			yamlContent: `
weapon:
  maxAmmo: 0
`,
			wantErr:     true,
			errContains: "maxAmmo",
		},
		{
			name: "ramp without period",
			yamlContent: `
spawner:
  rampDifficulty: true
  rampEverySeconds: 0
`,
			wantErr:     true,
			errContains: "rampEverySeconds",
		},
		{
			name:        "malformed yaml",
			yamlContent: "weapon: [1, 2",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseCombatConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadCombatConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combat.yaml")
	if err := os.WriteFile(path, []byte("guard:\n  detectionRange: 12\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := LoadCombatConfigFile(path)
	if err != nil {
		t.Fatalf("LoadCombatConfigFile failed: %v", err)
	}
	if cfg.Guard.DetectionRange != 12 {
		t.Errorf("expected detectionRange 12, got %v", cfg.Guard.DetectionRange)
	}

	if _, err := LoadCombatConfigFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShippedCombatConfig(t *testing.T) {
	cfg, err := LoadCombatConfigFile(filepath.Join("..", "..", DefaultCombatConfigPath))
	if err != nil {
		t.Fatalf("shipped config failed to load: %v", err)
	}
	def := DefaultCombatConfig()
	if cfg.Weapon != def.Weapon {
		t.Errorf("shipped weapon section drifted from defaults: %+v", cfg.Weapon)
	}
	if cfg.Spawner.SpawnInterval != def.Spawner.SpawnInterval {
		t.Errorf("shipped spawnInterval = %v, want %v", cfg.Spawner.SpawnInterval, def.Spawner.SpawnInterval)
	}
	if len(cfg.Arena.Ground) == 0 {
		t.Error("shipped arena has no ground")
	}
}

func TestLoadCombatConfigEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/combat.yaml": {Data: []byte("flash:\n  duration: 0.2\n")},
	})
	defer embedded.Reset()

	cfg, err := LoadCombatConfig(DefaultCombatConfigPath)
	if err != nil {
		t.Fatalf("LoadCombatConfig failed: %v", err)
	}
	if cfg.Flash.Duration != 0.2 {
		t.Errorf("expected flash duration 0.2, got %v", cfg.Flash.Duration)
	}

	if _, err := LoadCombatConfig("data/other.yaml"); err == nil {
		t.Error("expected error for missing embedded file")
	}
}
