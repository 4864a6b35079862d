//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 仅在使用 -tags mobile 构建时编译。构建前需要把 data/combat.yaml 复制到 mobile/data/：
//
//	mkdir -p mobile/data && cp data/combat.yaml mobile/data/
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.alleycat -o build/android/alleycat.aar -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/alleycat/pkg/app"
	"github.com/decker502/alleycat/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("沙盒初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
