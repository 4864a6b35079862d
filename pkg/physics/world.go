package physics

import (
	"math"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
)

// DefaultGravity 默认重力加速度（单位/秒²）
const DefaultGravity = 9.81

type pairKey struct {
	a, b ecs.EntityID
}

func makePair(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

var _ SpatialQuery = (*World)(nil)

// QueryStats 查询计数（用于验证搜索开销）
type QueryStats struct {
	Raycasts int
	Overlaps int
}

// World 基于 ECS 的参考物理世界
// 碰撞体 = PositionComponent + ColliderComponent，刚体 = BodyComponent
type World struct {
	em       *ecs.EntityManager
	Gravity  float64
	ignored  map[pairKey]struct{}
	touching map[pairKey]struct{}
	stats    QueryStats
}

// NewWorld 创建物理世界
func NewWorld(em *ecs.EntityManager, gravity float64) *World {
	return &World{
		em:       em,
		Gravity:  gravity,
		ignored:  make(map[pairKey]struct{}),
		touching: make(map[pairKey]struct{}),
	}
}

// Stats 返回累计查询次数
func (w *World) Stats() QueryStats {
	return w.stats
}

// ResetStats 清零查询计数
func (w *World) ResetStats() {
	w.stats = QueryStats{}
}

// Bounds 计算实体碰撞体的世界包围盒
func (w *World) Bounds(id ecs.EntityID) (AABB, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.em, id)
	if !ok {
		return AABB{}, false
	}
	col, ok := ecs.GetComponent[*components.ColliderComponent](w.em, id)
	if !ok {
		return AABB{}, false
	}
	return BoundsOf(pos, col), true
}

// BoundsOf 由位置和碰撞体计算包围盒
func BoundsOf(pos *components.PositionComponent, col *components.ColliderComponent) AABB {
	cx := pos.X + col.OffsetX
	cy := pos.Y + col.OffsetY
	return AABB{
		Min: utils.V(cx-col.HalfWidth, cy-col.HalfHeight),
		Max: utils.V(cx+col.HalfWidth, cy+col.HalfHeight),
	}
}

// colliders 返回所有存活碰撞体（按ID升序）
func (w *World) colliders(mask types.LayerMask) []ecs.EntityID {
	all := ecs.GetEntitiesWith2[*components.PositionComponent, *components.ColliderComponent](w.em)
	result := all[:0]
	for _, id := range all {
		if !w.em.IsAlive(id) {
			continue
		}
		col, _ := ecs.GetComponent[*components.ColliderComponent](w.em, id)
		if mask.Contains(col.Layer) {
			result = append(result, id)
		}
	}
	return result
}

// Raycast 实现 SpatialQuery
func (w *World) Raycast(origin, dir utils.Vec2, maxDistance float64, mask types.LayerMask) (RaycastHit, bool) {
	w.stats.Raycasts++

	d := dir.Normalized()
	if d == (utils.Vec2{}) {
		return RaycastHit{}, false
	}

	best := RaycastHit{Distance: math.Inf(1)}
	found := false
	for _, id := range w.colliders(mask) {
		box, _ := w.Bounds(id)
		t, ok := rayAABB(origin, d, box)
		if !ok || t > maxDistance {
			continue
		}
		if t < best.Distance {
			best = RaycastHit{Point: origin.Add(d.Scale(t)), Collider: id, Distance: t}
			found = true
		}
	}
	return best, found
}

// rayAABB 射线与包围盒求交（slab 法），返回最近的非负参数 t
func rayAABB(origin, d utils.Vec2, box AABB) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	axes := [2]struct{ o, d, lo, hi float64 }{
		{origin.X, d.X, box.Min.X, box.Max.X},
		{origin.Y, d.Y, box.Min.Y, box.Max.Y},
	}
	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	if tmin < 0 {
		// 起点在盒内
		return 0, true
	}
	return tmin, true
}

// OverlapCircle 实现 SpatialQuery，命中多个时返回ID最小的那个
func (w *World) OverlapCircle(center utils.Vec2, radius float64, mask types.LayerMask) (ecs.EntityID, bool) {
	w.stats.Overlaps++
	for _, id := range w.colliders(mask) {
		box, _ := w.Bounds(id)
		if box.IntersectsCircle(center, radius) {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// IgnoreCollisionPair 实现 SpatialQuery
func (w *World) IgnoreCollisionPair(a, b ecs.EntityID) {
	w.ignored[makePair(a, b)] = struct{}{}
}

// IsIgnored 两个碰撞体之间是否被忽略
func (w *World) IsIgnored(a, b ecs.EntityID) bool {
	_, ok := w.ignored[makePair(a, b)]
	return ok
}

// Step 推进物理一步：积分速度、落地修正、上报新接触
func (w *World) Step(dt float64, onContact ContactHandler) {
	bodies := ecs.GetEntitiesWith2[*components.BodyComponent, *components.PositionComponent](w.em)

	for _, id := range bodies {
		if !w.em.IsAlive(id) {
			continue
		}
		body, _ := ecs.GetComponent[*components.BodyComponent](w.em, id)
		if body.Static {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		body.VY -= w.Gravity * body.GravityScale * dt
		pos.X += body.VX * dt
		pos.Y += body.VY * dt
		body.Grounded = false

		if !body.ReportContacts {
			w.resolveGround(id, body, pos)
		}
	}

	w.reportContacts(bodies, onContact)
	w.pruneIgnored()
}

// resolveGround 把刚体推出地面碰撞体
func (w *World) resolveGround(id ecs.EntityID, body *components.BodyComponent, pos *components.PositionComponent) {
	col, ok := ecs.GetComponent[*components.ColliderComponent](w.em, id)
	if !ok || col.Layer == types.LayerGround {
		return
	}
	for _, groundID := range w.colliders(types.MaskOf(types.LayerGround)) {
		if groundID == id || w.IsIgnored(id, groundID) {
			continue
		}
		box := BoundsOf(pos, col)
		ground, _ := w.Bounds(groundID)
		if !box.Overlaps(ground) {
			continue
		}

		center := box.Center()
		if center.Y >= ground.Max.Y && body.VY <= 0 {
			// 从上方落地
			pos.Y = ground.Max.Y + col.HalfHeight - col.OffsetY
			body.VY = 0
			body.Grounded = true
			continue
		}

		// 侧面：沿较小穿透方向推出
		penLeft := box.Max.X - ground.Min.X
		penRight := ground.Max.X - box.Min.X
		if penLeft < penRight {
			pos.X -= penLeft
		} else {
			pos.X += penRight
		}
		body.VX = 0
	}
}

// reportContacts 为 ReportContacts 刚体上报本步新出现的接触
func (w *World) reportContacts(bodies []ecs.EntityID, onContact ContactHandler) {
	current := make(map[pairKey]struct{})
	all := w.colliders(types.AllLayers)

	for _, id := range bodies {
		if !w.em.IsAlive(id) {
			continue
		}
		body, _ := ecs.GetComponent[*components.BodyComponent](w.em, id)
		if !body.ReportContacts {
			continue
		}
		box, ok := w.Bounds(id)
		if !ok {
			continue
		}
		for _, other := range all {
			if other == id || !w.em.IsAlive(other) || w.IsIgnored(id, other) {
				continue
			}
			otherBox, _ := w.Bounds(other)
			if !box.Overlaps(otherBox) {
				continue
			}
			key := makePair(id, other)
			if _, seen := current[key]; seen {
				continue
			}
			current[key] = struct{}{}
			if _, wasTouching := w.touching[key]; wasTouching {
				continue
			}
			if onContact != nil {
				onContact(id, other)
			}
			// 回调可能销毁了自身，后续接触不再上报
			if !w.em.IsAlive(id) {
				break
			}
		}
	}
	w.touching = current
}

// pruneIgnored 清理已删除实体的忽略记录
func (w *World) pruneIgnored() {
	for key := range w.ignored {
		if !w.em.Exists(key.a) || !w.em.Exists(key.b) {
			delete(w.ignored, key)
		}
	}
}
