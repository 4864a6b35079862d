package entities

import (
	"fmt"
	"log"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// NewGroundSegment 创建静态地形段
func NewGroundSegment(em *ecs.EntityManager, seg config.GroundSegment) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if seg.Width <= 0 || seg.Height <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("ground segment must have positive size, got %vx%v", seg.Width, seg.Height)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: seg.X, Y: seg.Y})
	em.AddComponent(id, &components.ColliderComponent{
		HalfWidth:  seg.Width / 2,
		HalfHeight: seg.Height / 2,
		Layer:      types.LayerGround,
	})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorGround})
	return id, nil
}

// NewSpawnerEntity 创建敌人生成器
// 模板未注册或没有配置地面层时生成器禁用（所有落点搜索直接失败），不会中断模拟
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗配置
//   - target: 注入给新守卫的追踪目标
//   - templateKnown: 生成模板是否已注册
//   - now: 当前模拟时间（计时器从此刻开始）
func NewSpawnerEntity(em *ecs.EntityManager, cfg *config.CombatConfig, target ecs.EntityID, templateKnown bool, now float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("combat config cannot be nil")
	}

	s := cfg.Spawner
	groundMask, err := types.MaskFromNames(s.GroundLayers)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("spawner ground layers: %w", err)
	}
	blockMask, err := types.MaskFromNames(s.BlockLayers)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("spawner block layers: %w", err)
	}

	points := make([]components.SpawnPoint, 0, len(s.SpawnPoints))
	for i, x := range s.SpawnPoints {
		p := components.SpawnPoint{Name: fmt.Sprintf("point-%d", i)}
		if x != nil {
			p.X = *x
			p.Valid = true
		}
		points = append(points, p)
	}

	enabled := true
	if !templateKnown {
		log.Printf("[SpawnerFactory] Warning: template %q is not registered, spawner disabled", s.Template)
		enabled = false
	}
	if groundMask == types.NoLayers {
		log.Printf("[SpawnerFactory] Warning: no ground layers configured, spawner disabled")
		enabled = false
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: s.X, Y: s.Y})
	em.AddComponent(id, &components.SpawnerComponent{
		Template:          s.Template,
		Target:            target,
		Enabled:           enabled,
		GroundMask:        groundMask,
		UseSpawnPoints:    s.UseSpawnPoints,
		SpawnPoints:       points,
		RandomXMin:        s.RandomXRange[0],
		RandomXMax:        s.RandomXRange[1],
		RaycastTopY:       s.RaycastTopY,
		YOffset:           s.YOffset,
		ClearRadius:       s.ClearRadius,
		BlockMask:         blockMask,
		BurstCount:        s.BurstCount,
		MaxBurst:          s.MaxBurst,
		RampDifficulty:    s.RampDifficulty,
		GroundRayMaxTries: s.GroundRayMaxTries,
		ClearSpotMaxTries: s.ClearSpotMaxTries,
		VerboseLogs:       s.VerboseLogs,
		SpawnTimer: components.PeriodicTimer{
			Name:       "spawn",
			Interval:   s.SpawnInterval,
			NextFireAt: now,
			Armed:      true,
		},
		RampTimer: components.PeriodicTimer{
			Name:       "ramp",
			Interval:   s.RampEverySeconds,
			NextFireAt: now + s.RampEverySeconds,
			Armed:      s.RampDifficulty && s.RampEverySeconds > 0,
		},
	})
	em.AddComponent(id, &components.BehaviorComponent{Type: components.BehaviorSpawner})

	log.Printf("[SpawnerFactory] Created spawner %d (template=%s, burst=%d, ramp=%v, enabled=%v)",
		id, s.Template, s.BurstCount, s.RampDifficulty, enabled)
	return id, nil
}
