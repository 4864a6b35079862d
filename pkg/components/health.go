package components

// HealthComponent 存储可受伤实体的生命值信息
// 用于玩家和守卫
//
// 不变式: 0 <= Current <= MaxHitPoints，Current == 0 即死亡（终态）
type HealthComponent struct {
	MaxHitPoints int  // 最大生命值（> 0）
	Current      int  // 当前生命值
	DeathFired   bool // 死亡事件是否已触发（保证只触发一次）
}
