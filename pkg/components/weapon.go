package components

// ChargeState 蓄力状态
type ChargeState int

const (
	// ChargeIdle 未蓄力
	ChargeIdle ChargeState = iota
	// ChargeCharging 蓄力中
	ChargeCharging
)

// String 返回状态名
func (s ChargeState) String() string {
	if s == ChargeCharging {
		return "charging"
	}
	return "idle"
}

// WeaponComponent 投掷武器
// 配置字段在创建时从 config.WeaponConfig 复制，运行时只修改 LastThrowTime / Enabled
type WeaponComponent struct {
	ProjectileTemplate string // 投射物模板名，空或未注册时武器不可开火

	LightThrowSpeed float64 // 轻投速度
	ThrowCooldown   float64 // 两次投掷最小间隔（秒）

	ChargedMinSpeed float64 // 蓄力投最小速度
	ChargedMaxSpeed float64 // 蓄力投最大速度
	MaxChargeTime   float64 // 蓄满所需时间（秒）

	SpawnEdgePadding float64 // 投射物生成点超出身体边缘的距离
	SpawnYOffset     float64 // 手的高度（相对身体中心）

	LastThrowTime float64 // 上次投掷时间
	Enabled       bool    // 武器是否启用（禁用时强制回到未蓄力状态）
}

// AmmoPoolComponent 弹药池
// 只由所属武器系统修改
type AmmoPoolComponent struct {
	Capacity      int     // 容量（> 0）
	Count         int     // 当前弹药
	RegenInterval float64 // 每恢复一发所需秒数
	NextRegenTime float64 // 下次恢复时间

	// Fraction 弹药比例 Count/Capacity，每次弹药变化时重新计算
	Fraction float64

	// 头顶弹药条几何（本地坐标）
	BarFullWidth   float64 // 满格宽度
	BarFillScaleX  float64 // 填充条X缩放 = Fraction
	BarFillOffsetX float64 // 填充条X偏移 = -(1-Fraction)*BarFullWidth/2
}

// ChargeComponent 蓄力状态（每次松开都会重置）
type ChargeComponent struct {
	State   ChargeState
	Seconds float64 // 0 <= Seconds <= MaxChargeTime
}

// WeaponInputComponent 本帧输入快照
// 由输入适配层（ebiten / tcell）写入，武器系统消费后清除边沿标记
type WeaponInputComponent struct {
	LightPressed  bool // 轻投键本帧按下
	HeavyPressed  bool // 蓄力键本帧按下
	HeavyHeld     bool // 蓄力键当前按住
	HeavyReleased bool // 蓄力键本帧松开

	AimX float64 // 瞄准点（世界坐标）
	AimY float64
}
