package components

// LifetimeComponent 实体存活时间上限
// 投射物如果一直没有碰到东西，会在 MaxLifetime 秒模拟时间后自行销毁
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大存活时间(秒)
	CurrentLifetime float64 // 已存活时间(秒)
	IsExpired       bool    // 是否已过期
}
