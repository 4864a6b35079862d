package main

import (
	"flag"
	"log"

	"github.com/decker502/alleycat/pkg/app"
	"github.com/decker502/alleycat/pkg/embedded"
	"github.com/decker502/alleycat/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configFile = flag.String("config", "", "从磁盘读取战斗配置（默认使用嵌入的 data/combat.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置或当前时间）")
	mute       = flag.Bool("mute", false, "禁用提示音")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigFile: *configFile,
		Seed:       *seed,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("沙盒初始化失败: %v", err)
	}

	ebiten.SetWindowSize(scenes.ArenaScreenWidth, scenes.ArenaScreenHeight)
	ebiten.SetWindowTitle("Alley Cat Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	gameApp.SaveOnExit()
}
