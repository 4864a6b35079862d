package components

// BehaviorType 定义实体的行为类型
// 渲染端和场景据此区分实体，系统本身按组件查询
type BehaviorType int

const (
	// BehaviorPlayer 玩家：移动、投掷
	BehaviorPlayer BehaviorType = iota
	// BehaviorGuard 守卫：追击、攻击
	BehaviorGuard
	// BehaviorCatProjectile 猫投射物：飞行，碰到任何东西即销毁
	BehaviorCatProjectile
	// BehaviorGround 地形段
	BehaviorGround
	// BehaviorSpawner 敌人生成器
	BehaviorSpawner
)

// String 返回行为名
func (b BehaviorType) String() string {
	switch b {
	case BehaviorPlayer:
		return "player"
	case BehaviorGuard:
		return "guard"
	case BehaviorCatProjectile:
		return "cat"
	case BehaviorGround:
		return "ground"
	case BehaviorSpawner:
		return "spawner"
	default:
		return "unknown"
	}
}

// BehaviorComponent 标识实体的行为类型
type BehaviorComponent struct {
	Type BehaviorType
}
