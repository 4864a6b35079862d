package systems

import (
	"errors"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/entities"
	"github.com/decker502/alleycat/pkg/physics"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64 { return c.now }

func (c *fakeClock) Advance(dt float64) { c.now += dt }

// cueRecorder 记录表现层信号
type cueRecorder struct {
	flashes   map[ecs.EntityID]int
	charging  []bool
	throws    []components.ThrowKind
	facings   []int
	fractions []float64
	deaths    []ecs.EntityID
	spawned   []ecs.EntityID
}

func newCueRecorder() *cueRecorder {
	return &cueRecorder{flashes: make(map[ecs.EntityID]int)}
}

func (r *cueRecorder) Flash(id ecs.EntityID) { r.flashes[id]++ }
func (r *cueRecorder) Charging(_ ecs.EntityID, on bool) { r.charging = append(r.charging, on) }
func (r *cueRecorder) Facing(_ ecs.EntityID, dir int) { r.facings = append(r.facings, dir) }
func (r *cueRecorder) Death(id ecs.EntityID) { r.deaths = append(r.deaths, id) }
func (r *cueRecorder) Spawned(id ecs.EntityID) { r.spawned = append(r.spawned, id) }
func (r *cueRecorder) AmmoFraction(_ ecs.EntityID, f float64) {
	r.fractions = append(r.fractions, f)
}
func (r *cueRecorder) Throw(_ ecs.EntityID, kind components.ThrowKind) {
	r.throws = append(r.throws, kind)
}

// scriptedQuery 按脚本返回结果的空间查询
//   - rayHits: 第 i 次射线是否命中（超出脚本长度时取 rayDefault）
//   - blocked: 圆形检测是否被阻挡（nil 表示永远空闲）
type scriptedQuery struct {
	rayHits    []bool
	rayDefault bool
	groundY    float64
	blocked    func(call int, center utils.Vec2) bool
	overlapHit ecs.EntityID

	raycasts   int
	overlaps   int
	rayOrigins []utils.Vec2
	ignored    [][2]ecs.EntityID
}

var _ physics.SpatialQuery = (*scriptedQuery)(nil)

func (q *scriptedQuery) Raycast(origin, dir utils.Vec2, maxDistance float64, mask types.LayerMask) (physics.RaycastHit, bool) {
	call := q.raycasts
	q.raycasts++
	q.rayOrigins = append(q.rayOrigins, origin)

	hit := q.rayDefault
	if call < len(q.rayHits) {
		hit = q.rayHits[call]
	}
	if !hit {
		return physics.RaycastHit{}, false
	}
	return physics.RaycastHit{
		Point:    utils.V(origin.X, q.groundY),
		Distance: origin.Y - q.groundY,
	}, true
}

func (q *scriptedQuery) OverlapCircle(center utils.Vec2, radius float64, mask types.LayerMask) (ecs.EntityID, bool) {
	call := q.overlaps
	q.overlaps++
	if q.blocked != nil && q.blocked(call, center) {
		return q.overlapHit, true
	}
	return ecs.InvalidEntity, false
}

func (q *scriptedQuery) IgnoreCollisionPair(a, b ecs.EntityID) {
	q.ignored = append(q.ignored, [2]ecs.EntityID{a, b})
}

// failingSpawner 模板存在但实例化总是失败
type failingSpawner struct{}

func (failingSpawner) HasTemplate(string) bool { return true }

func (failingSpawner) SpawnProjectile(entities.ProjectileSpawn) (ecs.EntityID, error) {
	return ecs.InvalidEntity, errors.New("pool exhausted")
}

func (failingSpawner) SpawnGuard(entities.GuardSpawn) (ecs.EntityID, error) {
	return ecs.InvalidEntity, errors.New("pool exhausted")
}
