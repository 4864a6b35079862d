package entities

import (
	"errors"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/utils"
)

// ErrUnknownTemplate 模板未注册
var ErrUnknownTemplate = errors.New("unknown entity template")

// ProjectileSpawn 发射投射物的请求
type ProjectileSpawn struct {
	Template string
	Owner    ecs.EntityID
	Position utils.Vec2
	Velocity utils.Vec2
	Kind     components.ThrowKind

	// Exclusions 投射物忽略的碰撞体（发射者及其子实体），创建后不再修改
	Exclusions []ecs.EntityID
}

// GuardSpawn 生成守卫的请求
type GuardSpawn struct {
	Template string
	Position utils.Vec2
	Target   ecs.EntityID // 注入的追踪目标，可为 InvalidEntity
}
