package game

// Clock 模拟时钟
// 所有系统从同一个时钟读取当前时间，由场景每帧推进
type Clock struct {
	now   float64
	frame uint64
}

// NewClock 创建从 start 开始的时钟
func NewClock(start float64) *Clock {
	return &Clock{now: start}
}

// Now 返回当前模拟时间（秒）
func (c *Clock) Now() float64 {
	return c.now
}

// Frame 返回已推进的帧数
func (c *Clock) Frame() uint64 {
	return c.frame
}

// Advance 推进时间，负值被忽略
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		return
	}
	c.now += dt
	c.frame++
}
