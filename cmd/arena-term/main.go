// arena-term 终端版沙盒
//
// 用法：
//
//	go run ./cmd/arena-term [-config data/combat.yaml] [-seed 42] [-mute] [-log arena.log]
//
// 操作：
//
//	鼠标左键      轻投（朝鼠标位置）
//	鼠标右键      按住蓄力，松开投出
//	h/l 或 ←/→    左右移动
//	空格 / k      跳跃
//	f            朝最近的守卫轻投
//	j            开始/结束蓄力（没有鼠标时）
//	g            在玩家前方生成一个守卫
//	r            死亡后重开
//	q / Esc      退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/alleycat/pkg/config"
	"github.com/decker502/alleycat/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

var (
	configFile = flag.String("config", config.DefaultCombatConfigPath, "战斗配置文件")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置或当前时间）")
	mute       = flag.Bool("mute", false, "禁用提示音")
	logFile    = flag.String("log", "", "日志输出文件（默认丢弃，避免破坏终端画面）")
)

// moveHold 终端没有按键松开事件，一次按键维持移动的时长
const moveHold = 150 * time.Millisecond

type termGame struct {
	screen tcell.Screen
	cfg    *config.CombatConfig
	arena  *scenes.Arena
	cues   *toneCues
	view   *view

	moveAxis    float64
	moveUntil   time.Time
	jump        bool
	mouseX      int
	mouseY      int
	lastButtons tcell.ButtonMask
	keyCharging bool
}

func newTermGame(cfg *config.CombatConfig, cues *toneCues) (*termGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	g := &termGame{
		screen: screen,
		cfg:    cfg,
		cues:   cues,
	}
	if err := g.restart(); err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

func (g *termGame) restart() error {
	arena, err := scenes.NewArena(g.cfg, scenes.ArenaOptions{Cues: g.cues})
	if err != nil {
		return err
	}
	g.arena = arena
	w, h := g.screen.Size()
	g.view = newView(w, h)
	g.keyCharging = false
	return nil
}

func (g *termGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	case *tcell.EventResize:
		w, h := g.screen.Size()
		g.view = newView(w, h)
		g.screen.Sync()
	}
	return true
}

func (g *termGame) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		g.holdMove(-1)
	case tcell.KeyRight:
		g.holdMove(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			g.holdMove(-1)
		case 'l':
			g.holdMove(1)
		case ' ', 'k':
			g.jump = true
		case 'f':
			g.throwAtNearestGuard()
		case 'j':
			g.toggleKeyCharge()
		case 'g':
			g.spawnAhead()
		case 'r':
			if g.arena.PlayerDead() {
				if err := g.restart(); err != nil {
					log.Printf("[ArenaTerm] Restart failed: %v", err)
				}
			}
		}
	}
	return true
}

func (g *termGame) holdMove(axis float64) {
	g.moveAxis = axis
	g.moveUntil = time.Now().Add(moveHold)
}

func (g *termGame) handleMouse(ev *tcell.EventMouse) {
	g.mouseX, g.mouseY = ev.Position()
	in := g.arena.PlayerInput()
	buttons := ev.Buttons()
	pressed := buttons &^ g.lastButtons
	released := g.lastButtons &^ buttons
	g.lastButtons = buttons
	if in == nil {
		return
	}

	aim := g.view.cellToWorld(g.mouseX, g.mouseY)
	in.AimX, in.AimY = aim.X, aim.Y
	if pressed&tcell.Button1 != 0 {
		in.LightPressed = true
	}
	if pressed&tcell.Button2 != 0 {
		in.HeavyPressed = true
	}
	if released&tcell.Button2 != 0 {
		in.HeavyReleased = true
	}
	in.HeavyHeld = buttons&tcell.Button2 != 0 || g.keyCharging
}

func (g *termGame) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			axis := 0.0
			if now.Before(g.moveUntil) {
				axis = g.moveAxis
			}
			g.arena.MovePlayer(axis, g.jump)
			g.jump = false

			g.arena.Tick(dt)
			g.view.draw(g.screen, g.arena, g.keyCharging)
		}
	}
}

func (g *termGame) cleanup() {
	g.cues.close()
	g.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.LoadCombatConfigFile(*configFile)
	if err != nil {
		log.Printf("[ArenaTerm] Warning: %v (using defaults)", err)
		cfg = config.DefaultCombatConfig()
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	game, err := newTermGame(cfg, newToneCues(*mute))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
	fmt.Println(game.arena.Stats())
}
