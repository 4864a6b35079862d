package main

import (
	"log"
	"time"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/decker502/alleycat/pkg/systems"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// toneCues 用终端扬声器播放战斗提示音
type toneCues struct {
	systems.NopCueSink
	enabled bool
	volume  float64 // 相对音量（以 2 为底的对数增益）
}

func newToneCues(mute bool) *toneCues {
	c := &toneCues{volume: -1}
	if mute {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// 没有声音也能玩
		log.Printf("[ArenaTerm] Audio initialization failed: %v", err)
		return c
	}
	c.enabled = true
	return c
}

func (c *toneCues) close() {
	if c.enabled {
		speaker.Close()
	}
}

func (c *toneCues) play(freq float64, d time.Duration) {
	if !c.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Printf("[ArenaTerm] Tone %.0fHz: %v", freq, err)
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   c.volume,
	})
}

func (c *toneCues) Flash(ecs.EntityID) { c.play(880, 50*time.Millisecond) }
func (c *toneCues) Death(ecs.EntityID) { c.play(220, 250*time.Millisecond) }
func (c *toneCues) Spawned(ecs.EntityID) { c.play(150, 120*time.Millisecond) }

func (c *toneCues) Throw(_ ecs.EntityID, kind components.ThrowKind) {
	if kind == components.ThrowHeavy {
		c.play(440, 100*time.Millisecond)
		return
	}
	c.play(660, 40*time.Millisecond)
}
