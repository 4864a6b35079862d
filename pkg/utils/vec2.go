package utils

import "math"

// Vec2 二维向量（世界坐标，Y 轴向上）
type Vec2 struct {
	X, Y float64
}

// V 构造向量
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Right 规范的向右方向
var Right = Vec2{X: 1}

// Down 向下方向
var Down = Vec2{Y: -1}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LenSq 长度平方
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len 长度
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalized 单位向量；零向量返回零向量
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值，t 会被限制在 [0, 1]
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// SignOrPositive 返回 +1 或 -1，0 视为正方向
func SignOrPositive(x float64) int {
	if x >= 0 {
		return 1
	}
	return -1
}
