package components

import "github.com/decker502/alleycat/pkg/types"

// ColliderComponent 轴对齐矩形碰撞体
// 碰撞盒中心 = PositionComponent + Offset
type ColliderComponent struct {
	HalfWidth  float64     // 半宽
	HalfHeight float64     // 半高
	OffsetX    float64     // 相对实体位置的X偏移
	OffsetY    float64     // 相对实体位置的Y偏移
	Layer      types.Layer // 所在碰撞层
}
