package systems

// timeEpsilon 时间比较容差（秒）
// 时钟按浮点帧长累加，30 帧 1/60 秒会略小于 0.5
const timeEpsilon = 1e-9

// reached 当前时间是否已到达 at
func reached(now, at float64) bool {
	return now+timeEpsilon >= at
}
