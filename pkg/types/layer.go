// Package types 定义共享的基础类型
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Layer 碰撞层索引（0-31）
type Layer uint8

const (
	// LayerDefault 默认层（未分类的碰撞体）
	LayerDefault Layer = iota
	// LayerGround 地面/地形
	LayerGround
	// LayerPlayer 玩家
	LayerPlayer
	// LayerEnemy 敌人（守卫）
	LayerEnemy
	// LayerProjectile 投射物
	LayerProjectile
)

// MaxLayers 层的数量上限（与 LayerMask 位宽一致）
const MaxLayers = 32

// LayerMask 层掩码，用于过滤几何查询考虑的碰撞体类别
type LayerMask uint32

const (
	// NoLayers 空掩码，不匹配任何层
	NoLayers LayerMask = 0
	// AllLayers 匹配所有层
	AllLayers LayerMask = ^LayerMask(0)
)

var layerNames = map[string]Layer{
	"default":    LayerDefault,
	"ground":     LayerGround,
	"player":     LayerPlayer,
	"enemy":      LayerEnemy,
	"projectile": LayerProjectile,
}

// MaskOf 由若干层构造掩码
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l < MaxLayers {
			m |= 1 << l
		}
	}
	return m
}

// Contains 判断掩码是否包含指定层
func (m LayerMask) Contains(l Layer) bool {
	if l >= MaxLayers {
		return false
	}
	return m&(1<<l) != 0
}

// Without 返回去掉指定层后的掩码
func (m LayerMask) Without(layers ...Layer) LayerMask {
	return m &^ MaskOf(layers...)
}

// String 输出可读的层名列表
func (m LayerMask) String() string {
	if m == AllLayers {
		return "all"
	}
	names := make([]string, 0)
	for name, l := range layerNames {
		if m.Contains(l) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ",") + "]"
}

// String 返回层名
func (l Layer) String() string {
	for name, layer := range layerNames {
		if layer == l {
			return name
		}
	}
	return fmt.Sprintf("layer%d", uint8(l))
}

// LayerByName 按名称查找层（大小写不敏感）
func LayerByName(name string) (Layer, bool) {
	l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// MaskFromNames 将层名列表转换为掩码
// 特殊名称 "all"/"everything" 表示全部层
func MaskFromNames(names []string) (LayerMask, error) {
	var m LayerMask
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all", "everything":
			return AllLayers, nil
		}
		l, ok := LayerByName(name)
		if !ok {
			return NoLayers, fmt.Errorf("unknown layer %q", name)
		}
		m |= MaskOf(l)
	}
	return m, nil
}
