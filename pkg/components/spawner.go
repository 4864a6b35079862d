package components

import (
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// SpawnPoint 命名出生点
// Valid 为 false 表示该槽位未配置，使用生成器自身的X
type SpawnPoint struct {
	Name  string
	X     float64
	Valid bool
}

// SpawnerStats 生成统计
type SpawnerStats struct {
	Bursts           int // 已执行的批次
	Spawned          int // 成功生成的实体
	FailedPlacements int // 找不到落点的次数

	LastAttemptRaycasts int // 最近一次落点搜索的射线次数
	LastAttemptOverlaps int // 最近一次落点搜索的占用检测次数
	MaxAttemptRaycasts  int // 单次落点搜索射线次数的历史最大值
	MaxAttemptOverlaps  int // 单次落点搜索占用检测次数的历史最大值
}

// SpawnerComponent 敌人生成器
type SpawnerComponent struct {
	Template string       // 生成模板，未注册时生成器禁用
	Target   ecs.EntityID // 注入给新守卫的追踪目标
	Enabled  bool

	GroundMask     types.LayerMask
	UseSpawnPoints bool
	SpawnPoints    []SpawnPoint
	RandomXMin     float64
	RandomXMax     float64
	RaycastTopY    float64 // 向下射线的起始高度
	YOffset        float64 // 落点抬离地面的高度
	ClearRadius    float64 // 占用检测半径
	BlockMask      types.LayerMask

	BurstCount     int  // 每批生成数量（难度递增时增长）
	MaxBurst       int  // 每批上限
	RampDifficulty bool // 是否启用难度递增

	GroundRayMaxTries int // 外层：换X重试次数
	ClearSpotMaxTries int // 内层：横向挪动次数

	VerboseLogs bool

	SpawnTimer PeriodicTimer
	RampTimer  PeriodicTimer

	Stats SpawnerStats
}
