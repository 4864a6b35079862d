package utils

// Camera 世界坐标与屏幕坐标的转换
//
// 世界坐标 Y 轴向上，屏幕坐标 Y 轴向下；Center 是屏幕中心对应的世界坐标
//
//	screenX = (world.X - Center.X) * PixelsPerUnit + ScreenWidth/2
//	screenY = ScreenHeight/2 - (world.Y - Center.Y) * PixelsPerUnit
type Camera struct {
	Center        Vec2
	PixelsPerUnit float64
	ScreenWidth   float64
	ScreenHeight  float64
}

// NewCamera 创建摄像机，PixelsPerUnit 非正时取 1
func NewCamera(center Vec2, pixelsPerUnit float64, screenW, screenH int) Camera {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return Camera{
		Center:        center,
		PixelsPerUnit: pixelsPerUnit,
		ScreenWidth:   float64(screenW),
		ScreenHeight:  float64(screenH),
	}
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (c Camera) WorldToScreen(p Vec2) (float64, float64) {
	sx := (p.X-c.Center.X)*c.PixelsPerUnit + c.ScreenWidth/2
	sy := c.ScreenHeight/2 - (p.Y-c.Center.Y)*c.PixelsPerUnit
	return sx, sy
}

// ScreenToWorld 屏幕坐标 → 世界坐标
func (c Camera) ScreenToWorld(sx, sy float64) Vec2 {
	return Vec2{
		X: (sx-c.ScreenWidth/2)/c.PixelsPerUnit + c.Center.X,
		Y: (c.ScreenHeight/2-sy)/c.PixelsPerUnit + c.Center.Y,
	}
}

// WorldLength 世界长度 → 像素长度
func (c Camera) WorldLength(l float64) float64 {
	return l * c.PixelsPerUnit
}
