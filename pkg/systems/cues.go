package systems

import (
	"reflect"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
)

// TimeSource 模拟时间来源（game.Clock 实现）
type TimeSource interface {
	Now() float64
}

// CueSink 表现层信号接收端
// 所有调用都是即发即忘，核心系统从不读取返回值，也不等待
type CueSink interface {
	Flash(id ecs.EntityID)                            // 受击闪烁
	Charging(id ecs.EntityID, on bool)                // 蓄力循环开始/结束
	Throw(id ecs.EntityID, kind components.ThrowKind) // 投掷动作
	Facing(id ecs.EntityID, dir int)                  // 朝向翻转
	AmmoFraction(id ecs.EntityID, fraction float64)   // 弹药条比例
	Death(id ecs.EntityID)                            // 死亡
	Spawned(id ecs.EntityID)                          // 新守卫出生
}

// NopCueSink 丢弃所有信号，只在明确不需要表现层时使用
type NopCueSink struct{}

func (NopCueSink) Flash(ecs.EntityID) {}
func (NopCueSink) Charging(ecs.EntityID, bool) {}
func (NopCueSink) Throw(ecs.EntityID, components.ThrowKind) {}
func (NopCueSink) Facing(ecs.EntityID, int) {}
func (NopCueSink) AmmoFraction(ecs.EntityID, float64) {}
func (NopCueSink) Death(ecs.EntityID) {}
func (NopCueSink) Spawned(ecs.EntityID) {}

// MultiCueSink 把信号按顺序转发给多个接收端
type MultiCueSink []CueSink

func (m MultiCueSink) Flash(id ecs.EntityID) {
	for _, s := range m {
		s.Flash(id)
	}
}

func (m MultiCueSink) Charging(id ecs.EntityID, on bool) {
	for _, s := range m {
		s.Charging(id, on)
	}
}

func (m MultiCueSink) Throw(id ecs.EntityID, kind components.ThrowKind) {
	for _, s := range m {
		s.Throw(id, kind)
	}
}

func (m MultiCueSink) Facing(id ecs.EntityID, dir int) {
	for _, s := range m {
		s.Facing(id, dir)
	}
}

func (m MultiCueSink) AmmoFraction(id ecs.EntityID, fraction float64) {
	for _, s := range m {
		s.AmmoFraction(id, fraction)
	}
}

func (m MultiCueSink) Death(id ecs.EntityID) {
	for _, s := range m {
		s.Death(id)
	}
}

func (m MultiCueSink) Spawned(id ecs.EntityID) {
	for _, s := range m {
		s.Spawned(id)
	}
}

// requireCollaborators 构造时检查必需协作者，缺失属于程序错误
func requireCollaborators(system string, deps map[string]any) {
	for name, dep := range deps {
		if isNil(dep) {
			panic(system + ": missing required collaborator " + name)
		}
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
