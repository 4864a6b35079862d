package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/game"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/systems"
	"github.com/decker502/alleycat/pkg/utils"
)

// ArenaOptions 竞技场的可选协作者
type ArenaOptions struct {
	// Cues 表现层信号，nil 时只记录统计
	Cues systems.CueSink
	// Rand 生成器使用的随机源，nil 时按配置种子创建
	Rand *rand.Rand
}

// Arena 无界面的战斗模拟
// 组装时钟、物理世界、工厂和全部战斗系统，每帧按固定顺序推进
// ebiten 场景、终端沙盒和验证工具共用它
type Arena struct {
	cfg *config.CombatConfig

	entityManager *ecs.EntityManager
	clock         *game.Clock
	world         *physics.World
	factory       *entities.Factory

	healthSystem     *systems.HealthSystem
	flashSystem      *systems.FlashEffectSystem
	lifetimeSystem   *systems.LifetimeSystem
	projectileSystem *systems.ProjectileSystem
	weaponSystem     *systems.WeaponSystem
	guardSystem      *systems.GuardSystem
	spawnSystem      *systems.SpawnSystem

	player  ecs.EntityID
	spawner ecs.EntityID
	ground  []ecs.EntityID

	stats game.SessionStats
}

// NewArena 按配置创建竞技场：地形、玩家、生成器
func NewArena(cfg *config.CombatConfig, opts ArenaOptions) (*Arena, error) {
	if cfg == nil {
		return nil, fmt.Errorf("combat config cannot be nil")
	}

	a := &Arena{
		cfg:           cfg,
		entityManager: ecs.NewEntityManager(),
		clock:         game.NewClock(0),
	}
	a.world = physics.NewWorld(a.entityManager, cfg.Simulation.Gravity)
	a.factory = entities.NewFactory(a.entityManager, cfg)

	var cues systems.CueSink = &statsCues{arena: a}
	if opts.Cues != nil {
		cues = systems.MultiCueSink{cues, opts.Cues}
	}

	rng := opts.Rand
	if rng == nil {
		seed := cfg.Simulation.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	a.healthSystem = systems.NewHealthSystem(a.entityManager, cues, cfg.Flash)
	a.flashSystem = systems.NewFlashEffectSystem(a.entityManager)
	a.lifetimeSystem = systems.NewLifetimeSystem(a.entityManager)
	a.projectileSystem = systems.NewProjectileSystem(a.entityManager, a.healthSystem)
	a.weaponSystem = systems.NewWeaponSystem(a.entityManager, a.clock, a.world, a.factory, cues)
	a.guardSystem = systems.NewGuardSystem(a.entityManager, a.clock, a.world, a.healthSystem, cues)
	a.spawnSystem = systems.NewSpawnSystem(a.entityManager, a.clock, a.world, a.factory, cues, rng)

	verbose := cfg.Spawner.VerboseLogs
	a.projectileSystem.SetVerbose(verbose)
	a.weaponSystem.SetVerbose(verbose)
	a.guardSystem.SetVerbose(verbose)

	for i, seg := range cfg.Arena.Ground {
		id, err := entities.NewGroundSegment(a.entityManager, seg)
		if err != nil {
			return nil, fmt.Errorf("ground segment %d: %w", i, err)
		}
		a.ground = append(a.ground, id)
	}

	var err error
	a.player, err = entities.NewPlayerEntity(a.entityManager, cfg, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	templateKnown := a.factory.HasTemplate(cfg.Spawner.Template)
	a.spawner, err = entities.NewSpawnerEntity(a.entityManager, cfg, a.player, templateKnown, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("create spawner: %w", err)
	}

	log.Printf("[Arena] Ready: %d ground segments, player=%d, spawner=%d", len(a.ground), a.player, a.spawner)
	return a, nil
}

// Tick 推进一帧
// dt 截断到 [0, MaxDeltaTime]；先推进时钟，再按固定顺序运行系统，最后清理已销毁实体
func (a *Arena) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if limit := a.cfg.Simulation.MaxDeltaTime; limit > 0 && dt > limit {
		dt = limit
	}

	a.clock.Advance(dt)

	a.weaponSystem.Update(dt)
	a.guardSystem.Update(dt)
	a.world.Step(dt, a.projectileSystem.HandleContact)
	a.lifetimeSystem.Update(dt)
	a.flashSystem.Update(dt)
	a.spawnSystem.Update(dt)

	a.entityManager.RemoveMarkedEntities()
	a.stats.Elapsed = a.clock.Now()
}

// PlayerInput 玩家的输入快照（玩家已死亡时返回 nil）
func (a *Arena) PlayerInput() *components.WeaponInputComponent {
	if !a.entityManager.IsAlive(a.player) {
		return nil
	}
	in, _ := ecs.GetComponent[*components.WeaponInputComponent](a.entityManager, a.player)
	return in
}

// MovePlayer 设置玩家水平移动意图并处理跳跃
// axis 取 [-1, 1]，只有站在地面上时跳跃才生效
func (a *Arena) MovePlayer(axis float64, jump bool) {
	if !a.entityManager.IsAlive(a.player) {
		return
	}
	body, ok := ecs.GetComponent[*components.BodyComponent](a.entityManager, a.player)
	if !ok {
		return
	}
	if axis > 1 {
		axis = 1
	} else if axis < -1 {
		axis = -1
	}
	body.VX = axis * a.cfg.Player.MoveSpeed
	if jump && body.Grounded {
		body.VY = a.cfg.Player.JumpForce
		body.Grounded = false
	}
}

// SpawnGuardAt 在指定位置手动生成一个守卫
func (a *Arena) SpawnGuardAt(x, y float64) (ecs.EntityID, error) {
	return a.spawnSystem.SpawnOneAt(a.spawner, utils.V(x, y))
}

// SetRampDifficulty 运行中开关难度递增，同时更新本局配置
func (a *Arena) SetRampDifficulty(enabled bool) {
	a.cfg.Spawner.RampDifficulty = enabled
	if enabled && a.cfg.Spawner.RampEverySeconds <= 0 {
		a.cfg.Spawner.RampEverySeconds = config.DefaultCombatConfig().Spawner.RampEverySeconds
		if sp, ok := ecs.GetComponent[*components.SpawnerComponent](a.entityManager, a.spawner); ok {
			sp.RampTimer.Interval = a.cfg.Spawner.RampEverySeconds
		}
	}
	a.spawnSystem.SetRampDifficulty(a.spawner, enabled)
}

// SetVerboseLogs 运行中开关生成、投掷、守卫的详细日志
func (a *Arena) SetVerboseLogs(verbose bool) {
	a.cfg.Spawner.VerboseLogs = verbose
	a.spawnSystem.SetVerboseLogs(a.spawner, verbose)
	a.projectileSystem.SetVerbose(verbose)
	a.weaponSystem.SetVerbose(verbose)
	a.guardSystem.SetVerbose(verbose)
}

// Stats 本局统计
func (a *Arena) Stats() game.SessionStats {
	return a.stats
}

// SpawnerStats 生成器统计
func (a *Arena) SpawnerStats() components.SpawnerStats {
	st, _ := a.spawnSystem.Stats(a.spawner)
	return st
}

// PlayerDead 玩家是否已死亡
func (a *Arena) PlayerDead() bool {
	return a.stats.PlayerDead
}

func (a *Arena) EntityManager() *ecs.EntityManager { return a.entityManager }
func (a *Arena) World() *physics.World { return a.world }
func (a *Arena) Clock() *game.Clock { return a.clock }
func (a *Arena) Config() *config.CombatConfig { return a.cfg }
func (a *Arena) Player() ecs.EntityID { return a.player }
func (a *Arena) Spawner() ecs.EntityID { return a.spawner }
func (a *Arena) Weapons() *systems.WeaponSystem { return a.weaponSystem }
func (a *Arena) Health() *systems.HealthSystem { return a.healthSystem }
func (a *Arena) Spawning() *systems.SpawnSystem { return a.spawnSystem }
func (a *Arena) Projectiles() *systems.ProjectileSystem { return a.projectileSystem }

// statsCues 把表现层信号折算成本局统计
type statsCues struct {
	systems.NopCueSink
	arena *Arena
}

func (c *statsCues) Flash(id ecs.EntityID) {
	if id == c.arena.player {
		c.arena.stats.PlayerHits++
	}
}

func (c *statsCues) Throw(_ ecs.EntityID, kind components.ThrowKind) {
	c.arena.stats.Thrown++
	if kind == components.ThrowHeavy {
		c.arena.stats.HeavyThrown++
	}
}

func (c *statsCues) Death(id ecs.EntityID) {
	if id == c.arena.player {
		c.arena.stats.PlayerHits++
		c.arena.stats.PlayerDead = true
		log.Printf("[Arena] Player died: %s", c.arena.stats)
		return
	}
	if ecs.HasComponent[*components.GuardComponent](c.arena.entityManager, id) {
		c.arena.stats.GuardsKilled++
	}
}

func (c *statsCues) Spawned(ecs.EntityID) {
	c.arena.stats.GuardsSpawned++
}
