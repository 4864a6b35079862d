// Package physics 提供空间查询服务
//
// 核心玩法系统只依赖 SpatialQuery 接口（射线、圆形重叠、忽略碰撞对），
// World 是基于 ECS 碰撞体的参考实现，供沙盒程序和集成测试使用。
package physics

import (
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
	"github.com/decker502/alleycat/pkg/utils"
)

// RaycastHit 射线命中结果（只读快照，不应跨调用保存）
type RaycastHit struct {
	Point    utils.Vec2
	Collider ecs.EntityID
	Distance float64
}

// SpatialQuery 空间查询服务
type SpatialQuery interface {
	// Raycast 沿 dir 方向从 origin 发射射线，返回 maxDistance 内最近的命中
	Raycast(origin, dir utils.Vec2, maxDistance float64, mask types.LayerMask) (RaycastHit, bool)
	// OverlapCircle 返回与圆相交的任意一个碰撞体
	OverlapCircle(center utils.Vec2, radius float64, mask types.LayerMask) (ecs.EntityID, bool)
	// IgnoreCollisionPair 让两个碰撞体之间不再产生接触
	IgnoreCollisionPair(a, b ecs.EntityID)
}

// ContactHandler 接触回调，a 为上报接触的刚体
type ContactHandler func(a, b ecs.EntityID)

// AABB 轴对齐包围盒
type AABB struct {
	Min utils.Vec2
	Max utils.Vec2
}

// Center 包围盒中心
func (b AABB) Center() utils.Vec2 {
	return utils.V((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
}

// Overlaps 两个包围盒是否重叠（边界接触视为重叠）
func (b AABB) Overlaps(o AABB) bool {
	return b.Max.X >= o.Min.X && b.Min.X <= o.Max.X &&
		b.Max.Y >= o.Min.Y && b.Min.Y <= o.Max.Y
}

// IntersectsCircle 包围盒是否与圆相交
func (b AABB) IntersectsCircle(center utils.Vec2, radius float64) bool {
	cx := clamp(center.X, b.Min.X, b.Max.X)
	cy := clamp(center.Y, b.Min.Y, b.Max.Y)
	dx := center.X - cx
	dy := center.Y - cy
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
