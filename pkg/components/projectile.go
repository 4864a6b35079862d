package components

import (
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/types"
)

// ThrowKind 投掷方式
type ThrowKind int

const (
	// ThrowLight 轻投（左键，固定速度）
	ThrowLight ThrowKind = iota
	// ThrowHeavy 蓄力投（右键按住再松开）
	ThrowHeavy
)

// String 返回投掷方式名称
func (k ThrowKind) String() string {
	if k == ThrowHeavy {
		return "heavy"
	}
	return "light"
}

// ProjectileComponent 飞行中的投射物
type ProjectileComponent struct {
	Damage     int             // 命中伤害
	TargetMask types.LayerMask // 可伤害的层
	Owner      ecs.EntityID    // 发射者
	Kind       ThrowKind       // 投掷方式

	// Exclusions 发射时确定的忽略碰撞体集合（发射者自身的碰撞体），之后不再修改
	Exclusions map[ecs.EntityID]struct{}

	// Resolved 已经处理过一次接触（命中后只销毁一次）
	Resolved bool
}
