package config

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/decker502/alleycat/pkg/embedded"
	"github.com/decker502/alleycat/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultCombatConfigPath 嵌入的默认战斗配置
const DefaultCombatConfigPath = "data/combat.yaml"

// CombatConfig 战斗与生成模拟的全部可调参数
// 全部是加载期常量，运行时只有 burstCount（难度递增）和弹药/蓄力等运行状态会变化
type CombatConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Health     HealthConfig     `yaml:"health"`
	Flash      FlashConfig      `yaml:"flash"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Weapon     WeaponConfig     `yaml:"weapon"`
	Player     PlayerConfig     `yaml:"player"`
	Guard      GuardConfig      `yaml:"guard"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Arena      ArenaConfig      `yaml:"arena"`
}

// SimulationConfig 模拟步进
type SimulationConfig struct {
	MaxDeltaTime float64 `yaml:"maxDeltaTime"` // 单帧时间增量上限（秒）
	Gravity      float64 `yaml:"gravity"`      // 重力加速度
	Seed         int64   `yaml:"seed"`         // 随机种子，0 表示按时间
}

// HealthConfig 生命值
type HealthConfig struct {
	PlayerMaxHP int `yaml:"playerMaxHP"`
	GuardMaxHP  int `yaml:"guardMaxHP"`
}

// FlashConfig 受击闪烁
type FlashConfig struct {
	Duration  float64 `yaml:"duration"`  // 秒
	Intensity float64 `yaml:"intensity"` // 0.0 ~ 1.0
}

// ProjectileConfig 猫投射物
type ProjectileConfig struct {
	Template     string   `yaml:"template"`
	MaxLifetime  float64  `yaml:"maxLifetime"`
	Damage       int      `yaml:"damage"`
	TargetLayers []string `yaml:"targetLayers"`
	HalfSize     float64  `yaml:"halfSize"`
	GravityScale float64  `yaml:"gravityScale"`
}

// WeaponConfig 玩家投掷
type WeaponConfig struct {
	LightThrowSpeed  float64 `yaml:"lightThrowSpeed"`
	ThrowCooldown    float64 `yaml:"throwCooldown"`
	ChargedMinSpeed  float64 `yaml:"chargedMinSpeed"`
	ChargedMaxSpeed  float64 `yaml:"chargedMaxSpeed"`
	MaxChargeTime    float64 `yaml:"maxChargeTime"`
	MaxAmmo          int     `yaml:"maxAmmo"`
	ReloadSpeed      float64 `yaml:"reloadSpeed"` // 每恢复一发的秒数
	SpawnEdgePadding float64 `yaml:"spawnEdgePadding"`
	SpawnYOffset     float64 `yaml:"spawnYOffset"`
	BarFullWidth     float64 `yaml:"barFullWidth"`
}

// PlayerConfig 玩家身体与移动
type PlayerConfig struct {
	SpawnX       float64 `yaml:"spawnX"`
	SpawnY       float64 `yaml:"spawnY"`
	HalfWidth    float64 `yaml:"halfWidth"`
	HalfHeight   float64 `yaml:"halfHeight"`
	MoveSpeed    float64 `yaml:"moveSpeed"`
	JumpForce    float64 `yaml:"jumpForce"`
	GravityScale float64 `yaml:"gravityScale"`
}

// GuardConfig 守卫
type GuardConfig struct {
	Template              string   `yaml:"template"`
	MoveSpeed             float64  `yaml:"moveSpeed"`
	DetectionRange        float64  `yaml:"detectionRange"`
	StopDistance          float64  `yaml:"stopDistance"`
	AttackRange           float64  `yaml:"attackRange"`
	AttackCooldown        float64  `yaml:"attackCooldown"`
	AttackDamage          int      `yaml:"attackDamage"`
	AttackAnchorX         float64  `yaml:"attackAnchorX"`
	AttackAnchorY         float64  `yaml:"attackAnchorY"`
	TargetLayers          []string `yaml:"targetLayers"`
	KnockbackX            float64  `yaml:"knockbackX"`
	KnockbackY            float64  `yaml:"knockbackY"`
	FacingVelocityEpsilon float64  `yaml:"facingVelocityEpsilon"`
	FacingDistanceBand    float64  `yaml:"facingDistanceBand"`
	HalfWidth             float64  `yaml:"halfWidth"`
	HalfHeight            float64  `yaml:"halfHeight"`
	GravityScale          float64  `yaml:"gravityScale"`
}

// SpawnerConfig 敌人生成器
type SpawnerConfig struct {
	Template          string     `yaml:"template"`
	X                 float64    `yaml:"x"`
	Y                 float64    `yaml:"y"`
	GroundLayers      []string   `yaml:"groundLayers"`
	UseSpawnPoints    bool       `yaml:"useSpawnPoints"`
	SpawnPoints       []*float64 `yaml:"spawnPoints"` // null 槽位使用生成器自身的X
	RandomXRange      [2]float64 `yaml:"randomXRange"`
	RaycastTopY       float64    `yaml:"raycastTopY"`
	YOffset           float64    `yaml:"yOffset"`
	ClearRadius       float64    `yaml:"clearRadius"`
	BlockLayers       []string   `yaml:"blockLayers"`
	SpawnInterval     float64    `yaml:"spawnInterval"`
	BurstCount        int        `yaml:"burstCount"`
	RampDifficulty    bool       `yaml:"rampDifficulty"`
	RampEverySeconds  float64    `yaml:"rampEverySeconds"`
	MaxBurst          int        `yaml:"maxBurst"`
	GroundRayMaxTries int        `yaml:"groundRayMaxTries"`
	ClearSpotMaxTries int        `yaml:"clearSpotMaxTries"`
	VerboseLogs       bool       `yaml:"verboseLogs"`
}

// GroundSegment 地形段（矩形，x/y 为中心）
type GroundSegment struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArenaConfig 场地
type ArenaConfig struct {
	Ground []GroundSegment `yaml:"ground"`
}

// DefaultCombatConfig 返回默认配置
func DefaultCombatConfig() *CombatConfig {
	return &CombatConfig{
		Simulation: SimulationConfig{
			MaxDeltaTime: 0.06,
			Gravity:      9.81,
		},
		Health: HealthConfig{
			PlayerMaxHP: 3,
			GuardMaxHP:  3,
		},
		Flash: FlashConfig{
			Duration:  0.08,
			Intensity: 1.0,
		},
		Projectile: ProjectileConfig{
			Template:     "cat",
			MaxLifetime:  6,
			Damage:       1,
			TargetLayers: []string{"enemy"},
			HalfSize:     0.2,
			GravityScale: 1,
		},
		Weapon: WeaponConfig{
			LightThrowSpeed:  14,
			ThrowCooldown:    0.08,
			ChargedMinSpeed:  8,
			ChargedMaxSpeed:  28,
			MaxChargeTime:    3,
			MaxAmmo:          8,
			ReloadSpeed:      0.5,
			SpawnEdgePadding: 0.06,
			SpawnYOffset:     0.10,
			BarFullWidth:     0.8,
		},
		Player: PlayerConfig{
			SpawnX:       0,
			SpawnY:       1,
			HalfWidth:    0.4,
			HalfHeight:   0.5,
			MoveSpeed:    8,
			JumpForce:    20,
			GravityScale: 3,
		},
		Guard: GuardConfig{
			Template:              "guard",
			MoveSpeed:             4.5,
			DetectionRange:        8,
			StopDistance:          1.2,
			AttackRange:           0.8,
			AttackCooldown:        0.8,
			AttackDamage:          1,
			AttackAnchorX:         0.6,
			AttackAnchorY:         0,
			TargetLayers:          []string{"player"},
			KnockbackX:            3.8,
			KnockbackY:            3,
			FacingVelocityEpsilon: 0.05,
			FacingDistanceBand:    0.1,
			HalfWidth:             0.4,
			HalfHeight:            0.5,
			GravityScale:          3,
		},
		Spawner: SpawnerConfig{
			Template:          "guard",
			GroundLayers:      []string{"ground"},
			RandomXRange:      [2]float64{-10, 10},
			RaycastTopY:       30,
			YOffset:           0.05,
			ClearRadius:       0.4,
			BlockLayers:       []string{"default", "player", "enemy"},
			SpawnInterval:     5,
			BurstCount:        1,
			RampDifficulty:    false,
			RampEverySeconds:  20,
			MaxBurst:          8,
			GroundRayMaxTries: 8,
			ClearSpotMaxTries: 6,
		},
		Arena: ArenaConfig{
			Ground: []GroundSegment{
				{X: 0, Y: -1, Width: 24, Height: 2},
			},
		},
	}
}

// LoadCombatConfig 从嵌入资源加载战斗配置
func LoadCombatConfig(path string) (*CombatConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combat config %s: %w", path, err)
	}
	cfg, err := ParseCombatConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadCombatConfigFile 从文件系统加载战斗配置
func LoadCombatConfigFile(path string) (*CombatConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combat config file: %w", err)
	}
	cfg, err := ParseCombatConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseCombatConfig 解析 YAML，缺失字段保留默认值
func ParseCombatConfig(data []byte) (*CombatConfig, error) {
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse combat config YAML: %w", err)
	}

	cfg.normalize()

	if err := validateCombatConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid combat config: %w", err)
	}
	return cfg, nil
}

// normalize 自动修正越界但可理解的配置（不拒绝）
func (c *CombatConfig) normalize() {
	s := &c.Spawner
	if s.RandomXRange[0] > s.RandomXRange[1] {
		log.Printf("[Config] spawner.randomXRange reversed (%v), swapping", s.RandomXRange)
		s.RandomXRange[0], s.RandomXRange[1] = s.RandomXRange[1], s.RandomXRange[0]
	}
	if s.GroundRayMaxTries < 0 {
		s.GroundRayMaxTries = 0
	}
	if s.ClearSpotMaxTries < 0 {
		s.ClearSpotMaxTries = 0
	}
	if s.BurstCount < 0 {
		s.BurstCount = 0
	}
	if s.MaxBurst < s.BurstCount {
		s.MaxBurst = s.BurstCount
	}

	w := &c.Weapon
	if w.ChargedMinSpeed > w.ChargedMaxSpeed {
		log.Printf("[Config] weapon charged speed range reversed (%v > %v), swapping", w.ChargedMinSpeed, w.ChargedMaxSpeed)
		w.ChargedMinSpeed, w.ChargedMaxSpeed = w.ChargedMaxSpeed, w.ChargedMinSpeed
	}
	if w.ThrowCooldown < 0 {
		w.ThrowCooldown = 0
	}

	g := &c.Guard
	if g.StopDistance > g.DetectionRange {
		log.Printf("[Config] guard.stopDistance %.2f exceeds detectionRange %.2f, clamping", g.StopDistance, g.DetectionRange)
		g.StopDistance = g.DetectionRange
	}

	if c.Flash.Intensity < 0 {
		c.Flash.Intensity = 0
	}
	if c.Flash.Intensity > 1 {
		c.Flash.Intensity = 1
	}
}

// validateCombatConfig 验证无法自动修正的配置
func validateCombatConfig(c *CombatConfig) error {
	if c.Simulation.MaxDeltaTime <= 0 {
		return fmt.Errorf("simulation.maxDeltaTime must be > 0, got %v", c.Simulation.MaxDeltaTime)
	}
	if c.Health.PlayerMaxHP <= 0 || c.Health.GuardMaxHP <= 0 {
		return fmt.Errorf("health max HP must be > 0, got player=%d guard=%d", c.Health.PlayerMaxHP, c.Health.GuardMaxHP)
	}
	if c.Weapon.MaxAmmo <= 0 {
		return fmt.Errorf("weapon.maxAmmo must be > 0, got %d", c.Weapon.MaxAmmo)
	}
	if c.Weapon.ReloadSpeed <= 0 {
		return fmt.Errorf("weapon.reloadSpeed must be > 0, got %v", c.Weapon.ReloadSpeed)
	}
	if c.Weapon.MaxChargeTime <= 0 {
		return fmt.Errorf("weapon.maxChargeTime must be > 0, got %v", c.Weapon.MaxChargeTime)
	}
	if c.Projectile.MaxLifetime <= 0 || math.IsInf(c.Projectile.MaxLifetime, 0) {
		return fmt.Errorf("projectile.maxLifetime must be a finite value > 0, got %v", c.Projectile.MaxLifetime)
	}
	if c.Spawner.SpawnInterval <= 0 {
		return fmt.Errorf("spawner.spawnInterval must be > 0, got %v", c.Spawner.SpawnInterval)
	}
	if c.Spawner.RampDifficulty && c.Spawner.RampEverySeconds <= 0 {
		return fmt.Errorf("spawner.rampEverySeconds must be > 0 when rampDifficulty is on, got %v", c.Spawner.RampEverySeconds)
	}

	for name, layers := range map[string][]string{
		"projectile.targetLayers": c.Projectile.TargetLayers,
		"guard.targetLayers":      c.Guard.TargetLayers,
		"spawner.groundLayers":    c.Spawner.GroundLayers,
		"spawner.blockLayers":     c.Spawner.BlockLayers,
	} {
		if _, err := types.MaskFromNames(layers); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	for i, seg := range c.Arena.Ground {
		if seg.Width <= 0 || seg.Height <= 0 {
			return fmt.Errorf("arena.ground[%d]: width and height must be > 0", i)
		}
	}
	return nil
}

// Mask 将已验证的层名列表转换为掩码（未知层名已在加载时拒绝）
func Mask(names []string) types.LayerMask {
	m, err := types.MaskFromNames(names)
	if err != nil {
		return types.NoLayers
	}
	return m
}
