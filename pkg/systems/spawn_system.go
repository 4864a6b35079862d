package systems

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/utils"
)

// ErrNoPlacement 本次落点搜索没有找到可用位置（可恢复）
var ErrNoPlacement = errors.New("no placement found")

// clearSpotOffsets 清空检测的横向挪动顺序
var clearSpotOffsets = [...]float64{0, 0.6, -0.6, 1.2, -1.2, 1.8}

// MaxClearSpotTries 内层搜索次数上限
const MaxClearSpotTries = len(clearSpotOffsets)

// GuardSpawner 守卫实例化协作者（entities.Factory 实现）
type GuardSpawner interface {
	HasTemplate(name string) bool
	SpawnGuard(req entities.GuardSpawn) (ecs.EntityID, error)
}

// SpawnSystem 敌人生成器
//
// 落点搜索分两层：
//   - 外层最多 GroundRayMaxTries 次：选一个X，从高处向下射线找地面，没打到就换X
//   - 内层最多 min(ClearSpotMaxTries, 6) 次：在落点附近按固定偏移横向挪动，
//     第一个没有阻挡的位置即为结果；都被占用则回到外层换X
//
// 计时器：生成计时器启动时立即触发一次，之后每 SpawnInterval 触发；
// 难度计时器每满一个 RampEverySeconds 让每批数量 +1（不超过 MaxBurst）
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	clock         TimeSource
	query         physics.SpatialQuery
	spawner       GuardSpawner
	cues          CueSink
	rng           *rand.Rand
}

// NewSpawnSystem 创建生成系统
// rng 为 nil 时按时钟当前值取种子
func NewSpawnSystem(em *ecs.EntityManager, clock TimeSource, query physics.SpatialQuery, spawner GuardSpawner, cues CueSink, rng *rand.Rand) *SpawnSystem {
	requireCollaborators("SpawnSystem", map[string]any{
		"entityManager": em,
		"clock":         clock,
		"query":         query,
		"spawner":       spawner,
		"cues":          cues,
	})
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(math.Float64bits(clock.Now()))))
	}
	return &SpawnSystem{
		entityManager: em,
		clock:         clock,
		query:         query,
		spawner:       spawner,
		cues:          cues,
		rng:           rng,
	}
}

// Update 检查每个生成器的生成与难度计时器
// 同一帧两者都到期时先生成再递增
func (s *SpawnSystem) Update(deltaTime float64) {
	now := s.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.SpawnerComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		sp, _ := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
		if !sp.Enabled {
			continue
		}

		if due(&sp.SpawnTimer, now) {
			s.SpawnBurst(id, sp.BurstCount)
		}

		if sp.RampDifficulty && due(&sp.RampTimer, now) {
			if sp.BurstCount < sp.MaxBurst {
				sp.BurstCount++
				log.Printf("[SpawnSystem] Spawner %d ramped burst to %d", id, sp.BurstCount)
			}
		}
	}
}

// due 计时器到期时推进到下一次触发时间
// 不补发错过的周期
func due(timer *components.PeriodicTimer, now float64) bool {
	if !timer.Armed || timer.Interval <= 0 || !reached(now, timer.NextFireAt) {
		return false
	}
	timer.NextFireAt = now + timer.Interval
	timer.FireCount++
	return true
}

// SpawnBurst 独立生成 n 个守卫，单个失败只记录并跳过
// 返回成功生成的数量
func (s *SpawnSystem) SpawnBurst(id ecs.EntityID, n int) int {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	sp.Stats.Bursts++

	spawned := 0
	for i := 0; i < n; i++ {
		pos, err := s.TryGetSpawnPosition(id)
		if err != nil {
			sp.Stats.FailedPlacements++
			if sp.VerboseLogs {
				log.Printf("[SpawnSystem] Spawner %d slot %d/%d: %v", id, i+1, n, err)
			}
			continue
		}
		if _, err := s.SpawnOneAt(id, pos); err != nil {
			log.Printf("[SpawnSystem] Spawner %d slot %d/%d: %v", id, i+1, n, err)
			continue
		}
		spawned++
	}

	if spawned == 0 && n > 0 && sp.VerboseLogs {
		log.Printf("[SpawnSystem] Warning: spawner %d burst of %d produced no guards", id, n)
	}
	return spawned
}

// SpawnOneAt 在指定位置生成一个守卫（不做落点搜索）
func (s *SpawnSystem) SpawnOneAt(id ecs.EntityID, pos utils.Vec2) (ecs.EntityID, error) {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("spawner %d: %w", id, ecs.ErrEntityNotFound)
	}
	guard, err := s.spawner.SpawnGuard(entities.GuardSpawn{
		Template: sp.Template,
		Position: pos,
		Target:   sp.Target,
	})
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("spawn guard: %w", err)
	}
	sp.Stats.Spawned++
	s.cues.Spawned(guard)
	if sp.VerboseLogs {
		log.Printf("[SpawnSystem] Spawner %d placed guard %d at (%.2f, %.2f)", id, guard, pos.X, pos.Y)
	}
	return guard, nil
}

// TryGetSpawnPosition 搜索一个可用落点
// 失败时返回包装了 ErrNoPlacement 的错误
func (s *SpawnSystem) TryGetSpawnPosition(id ecs.EntityID) (utils.Vec2, error) {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}, fmt.Errorf("spawner %d: %w", id, ecs.ErrEntityNotFound)
	}
	sp.Stats.LastAttemptRaycasts = 0
	sp.Stats.LastAttemptOverlaps = 0
	defer s.recordAttempt(sp)

	if !sp.Enabled {
		return utils.Vec2{}, fmt.Errorf("spawner %d disabled: %w", id, ErrNoPlacement)
	}

	originX := 0.0
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		originX = pos.X
	}

	for try := 0; try < sp.GroundRayMaxTries; try++ {
		x := s.ChooseX(sp, originX)
		sp.Stats.LastAttemptRaycasts++
		hit, ok := s.query.Raycast(utils.V(x, sp.RaycastTopY), utils.Down, math.MaxFloat64, sp.GroundMask)
		if !ok {
			continue
		}

		base := hit.Point.Add(utils.V(0, sp.YOffset))
		if pos, ok := s.FindClearNearby(sp, base); ok {
			return pos, nil
		}
	}
	return utils.Vec2{}, fmt.Errorf("spawner %d after %d ground rays: %w", id, sp.GroundRayMaxTries, ErrNoPlacement)
}

func (s *SpawnSystem) recordAttempt(sp *components.SpawnerComponent) {
	if sp.Stats.LastAttemptRaycasts > sp.Stats.MaxAttemptRaycasts {
		sp.Stats.MaxAttemptRaycasts = sp.Stats.LastAttemptRaycasts
	}
	if sp.Stats.LastAttemptOverlaps > sp.Stats.MaxAttemptOverlaps {
		sp.Stats.MaxAttemptOverlaps = sp.Stats.LastAttemptOverlaps
	}
}

// FindClearNearby 在 base 附近按固定偏移寻找未被阻挡的位置
func (s *SpawnSystem) FindClearNearby(sp *components.SpawnerComponent, base utils.Vec2) (utils.Vec2, bool) {
	tries := min(sp.ClearSpotMaxTries, MaxClearSpotTries)
	for i := 0; i < tries; i++ {
		candidate := base.Add(utils.V(clearSpotOffsets[i], 0))
		sp.Stats.LastAttemptOverlaps++
		if _, blocked := s.query.OverlapCircle(candidate, sp.ClearRadius, sp.BlockMask); !blocked {
			return candidate, true
		}
	}
	return utils.Vec2{}, false
}

// ChooseX 选择候选X
// 使用出生点时从列表中均匀选择（未配置的槽位取生成器自身X）；
// 否则在随机范围内均匀选择，范围反向时自动交换
func (s *SpawnSystem) ChooseX(sp *components.SpawnerComponent, originX float64) float64 {
	if sp.UseSpawnPoints && len(sp.SpawnPoints) > 0 {
		p := sp.SpawnPoints[s.rng.Intn(len(sp.SpawnPoints))]
		if !p.Valid {
			return originX
		}
		return p.X
	}

	lo, hi := sp.RandomXMin, sp.RandomXMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Stats 返回生成器统计
func (s *SpawnSystem) Stats(id ecs.EntityID) (components.SpawnerStats, bool) {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return components.SpawnerStats{}, false
	}
	return sp.Stats, true
}

// SetRampDifficulty 运行中开关难度递增
// 开启时递增计时器从当前时间重新计一个完整周期；关闭不回退已增加的数量
func (s *SpawnSystem) SetRampDifficulty(id ecs.EntityID, enabled bool) bool {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return false
	}
	if enabled == sp.RampDifficulty {
		return true
	}
	sp.RampDifficulty = enabled
	sp.RampTimer.Armed = enabled && sp.RampTimer.Interval > 0
	if sp.RampTimer.Armed {
		sp.RampTimer.NextFireAt = s.clock.Now() + sp.RampTimer.Interval
	}
	log.Printf("[SpawnSystem] Spawner %d ramp difficulty=%v", id, enabled)
	return true
}

// SetVerboseLogs 运行中开关生成器详细日志
func (s *SpawnSystem) SetVerboseLogs(id ecs.EntityID, verbose bool) bool {
	sp, ok := ecs.GetComponent[*components.SpawnerComponent](s.entityManager, id)
	if !ok {
		return false
	}
	sp.VerboseLogs = verbose
	return true
}
