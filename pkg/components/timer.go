package components

// PeriodicTimer 周期计时器
// "睡到 NextFireAt 再执行一次"，由所属系统每帧检查，不可重入
type PeriodicTimer struct {
	Name       string  // 计时器名称，如 "spawn"、"ramp"
	Interval   float64 // 间隔（秒）
	NextFireAt float64 // 下次触发时间
	Armed      bool    // 是否已启动
	FireCount  int     // 已触发次数
}
