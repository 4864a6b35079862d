package components

// FlashEffectComponent 受击闪烁效果组件
// 纯表现数据：受到非致命伤害时挂上，到时后由 FlashEffectSystem 移除（恢复原色）
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0），渲染端据此混合受击色
	Intensity float64

	// IsActive 是否激活
	IsActive bool
}
