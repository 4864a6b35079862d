// verify_spawn 落点搜索验证工具
//
// 在生成的地形上执行 N 次落点搜索，输出成功率和单次搜索的最大查询次数，
// 并检查查询次数是否满足上界：射线 <= groundRayMaxTries，占用检测 <= groundRayMaxTries * min(clearSpotMaxTries, 6)。
//
// 用法：
//
//	go run ./cmd/verify_spawn -attempts 1000 -terrain gaps -seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/scenes"
	"github.com/decker502/alleycat/pkg/systems"
)

var (
	attempts    = flag.Int("attempts", 500, "落点搜索次数")
	terrain     = flag.String("terrain", terrainGaps, "地形类型: flat, ledges, gaps, none")
	halfWidth   = flag.Float64("half-width", 12, "地形半宽")
	seed        = flag.Int64("seed", 1, "随机种子")
	groundTries = flag.Int("ground-tries", -1, "覆盖 groundRayMaxTries（-1 表示使用配置）")
	clearTries  = flag.Int("clear-tries", -1, "覆盖 clearSpotMaxTries（-1 表示使用配置）")
	fill        = flag.Bool("fill", true, "每次成功后在落点放一个守卫（逐步挤占空间）")
	configFile  = flag.String("config", "", "战斗配置文件（默认使用内置默认值）")
	verbose     = flag.Bool("verbose", false, "显示详细日志")
)

// report 验证结果
type report struct {
	Attempts     int
	Successes    int
	MaxRaycasts  int
	MaxOverlaps  int
	RayBound     int
	OverlapBound int
}

func (r report) withinBounds() bool {
	return r.MaxRaycasts <= r.RayBound && r.MaxOverlaps <= r.OverlapBound
}

func (r report) String() string {
	rate := 0.0
	if r.Attempts > 0 {
		rate = float64(r.Successes) / float64(r.Attempts) * 100
	}
	return fmt.Sprintf("attempts=%d success=%d (%.1f%%) max raycasts=%d/%d max overlaps=%d/%d",
		r.Attempts, r.Successes, rate, r.MaxRaycasts, r.RayBound, r.MaxOverlaps, r.OverlapBound)
}

func loadConfig() (*config.CombatConfig, error) {
	if *configFile == "" {
		return config.DefaultCombatConfig(), nil
	}
	return config.LoadCombatConfigFile(*configFile)
}

// runAttempts 在竞技场上执行 n 次落点搜索
// 查询次数取自物理世界的实际计数，而不是生成器自己的记录
func runAttempts(arena *scenes.Arena, n int, occupy bool) report {
	sp := arena.Config().Spawner
	r := report{
		Attempts:     n,
		RayBound:     sp.GroundRayMaxTries,
		OverlapBound: sp.GroundRayMaxTries * min(sp.ClearSpotMaxTries, systems.MaxClearSpotTries),
	}

	world := arena.World()
	for i := 0; i < n; i++ {
		world.ResetStats()
		pos, err := arena.Spawning().TryGetSpawnPosition(arena.Spawner())
		stats := world.Stats()
		r.MaxRaycasts = max(r.MaxRaycasts, stats.Raycasts)
		r.MaxOverlaps = max(r.MaxOverlaps, stats.Overlaps)

		if err != nil {
			log.Printf("[VerifySpawn] attempt %d: %v", i, err)
			continue
		}
		r.Successes++
		if occupy {
			if _, err := arena.SpawnGuardAt(pos.X, pos.Y); err != nil {
				log.Printf("[VerifySpawn] attempt %d: occupy failed: %v", i, err)
			}
		}
	}
	return r
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	ground, err := generateTerrain(rng, *terrain, *halfWidth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	cfg.Arena.Ground = ground
	cfg.Spawner.UseSpawnPoints = false
	cfg.Spawner.RandomXRange = [2]float64{-*halfWidth, *halfWidth}
	if *groundTries >= 0 {
		cfg.Spawner.GroundRayMaxTries = *groundTries
	}
	if *clearTries >= 0 {
		cfg.Spawner.ClearSpotMaxTries = *clearTries
	}

	arena, err := scenes.NewArena(cfg, scenes.ArenaOptions{Rand: rng})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create arena: %v\n", err)
		os.Exit(2)
	}

	r := runAttempts(arena, *attempts, *fill)
	fmt.Printf("terrain=%s segments=%d %s\n", *terrain, len(ground), r)

	if !r.withinBounds() {
		fmt.Println("FAIL: placement search exceeded its query bound")
		os.Exit(1)
	}
	fmt.Println("OK")
}
