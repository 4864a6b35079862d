package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可独立更新与绘制的场景
type Scene interface {
	// Update 推进场景，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时保存状态
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}

// Finishable 可选接口：场景请求重开时返回 true
type Finishable interface {
	WantsRestart() bool
}
