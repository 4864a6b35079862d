package main

import (
	"log"
	"math"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
)

// nearestGuard 距离玩家最近的守卫位置
func (g *termGame) nearestGuard() (*components.PositionComponent, bool) {
	em := g.arena.EntityManager()
	playerPos, ok := ecs.GetComponent[*components.PositionComponent](em, g.arena.Player())
	if !ok {
		return nil, false
	}

	var best *components.PositionComponent
	bestDist := math.Inf(1)
	for _, id := range ecs.GetEntitiesWith2[*components.GuardComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if d := math.Hypot(pos.X-playerPos.X, pos.Y-playerPos.Y); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best, best != nil
}

// throwAtNearestGuard 没有鼠标时的轻投：瞄准最近的守卫，没有守卫时朝当前朝向
func (g *termGame) throwAtNearestGuard() {
	in := g.arena.PlayerInput()
	if in == nil {
		return
	}
	g.aimForKeyboard(in)
	in.LightPressed = true
}

// toggleKeyCharge 用 j 键模拟按住/松开蓄力键
func (g *termGame) toggleKeyCharge() {
	in := g.arena.PlayerInput()
	if in == nil {
		g.keyCharging = false
		return
	}
	g.aimForKeyboard(in)
	if !g.keyCharging {
		g.keyCharging = true
		in.HeavyPressed = true
		in.HeavyHeld = true
		return
	}
	g.keyCharging = false
	in.HeavyReleased = true
	in.HeavyHeld = false
}

func (g *termGame) aimForKeyboard(in *components.WeaponInputComponent) {
	if pos, ok := g.nearestGuard(); ok {
		in.AimX, in.AimY = pos.X, pos.Y
		return
	}
	em := g.arena.EntityManager()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, g.arena.Player())
	if !ok {
		return
	}
	dir := 1.0
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, g.arena.Player()); ok {
		dir = float64(facing.Dir)
	}
	in.AimX, in.AimY = pos.X+dir*5, pos.Y
}

// spawnAhead 在玩家前方手动生成守卫
func (g *termGame) spawnAhead() {
	em := g.arena.EntityManager()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, g.arena.Player())
	if !ok {
		return
	}
	dir := 1.0
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, g.arena.Player()); ok {
		dir = float64(facing.Dir)
	}
	if _, err := g.arena.SpawnGuardAt(pos.X+dir*4, pos.Y+1); err != nil {
		log.Printf("[ArenaTerm] Manual spawn failed: %v", err)
	}
}
