package components

// PositionComponent 实体在世界中的位置（世界单位，Y 轴向上）
type PositionComponent struct {
	X float64
	Y float64
}

// BodyComponent 刚体：速度与重力
// 物理世界每步积分速度，守卫/武器系统只写速度，不直接改位置
type BodyComponent struct {
	VX           float64 // 水平速度（单位/秒）
	VY           float64 // 垂直速度（单位/秒），正值向上
	GravityScale float64 // 重力倍率，0 表示不受重力
	Grounded     bool    // 本步是否站在地面上
	Static       bool    // 静态刚体不积分

	// ReportContacts 为 true 时物理世界会为该刚体上报新接触（投射物使用）
	ReportContacts bool
}

// FacingComponent 水平朝向
type FacingComponent struct {
	Dir int // +1 朝右，-1 朝左
}
