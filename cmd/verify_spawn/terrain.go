package main

import (
	"fmt"
	"math/rand"

	"github.com/decker502/alleycat/pkg/config"
)

// 地形类型
const (
	terrainFlat   = "flat"   // 一整块地面
	terrainLedges = "ledges" // 地面 + 随机平台
	terrainGaps   = "gaps"   // 有缺口的地面（部分射线落空）
	terrainNone   = "none"   // 没有地面（所有射线落空）
)

// generateTerrain 生成覆盖 [-halfWidth, halfWidth] 的地形
func generateTerrain(rng *rand.Rand, kind string, halfWidth float64) ([]config.GroundSegment, error) {
	if halfWidth <= 0 {
		return nil, fmt.Errorf("terrain half width must be positive, got %v", halfWidth)
	}
	floor := config.GroundSegment{X: 0, Y: -1, Width: halfWidth * 2, Height: 2}

	switch kind {
	case terrainFlat:
		return []config.GroundSegment{floor}, nil

	case terrainLedges:
		segs := []config.GroundSegment{floor}
		n := 2 + rng.Intn(4)
		for i := 0; i < n; i++ {
			w := 1.5 + rng.Float64()*3
			segs = append(segs, config.GroundSegment{
				X:      (rng.Float64()*2 - 1) * (halfWidth - w/2),
				Y:      1.5 + rng.Float64()*4,
				Width:  w,
				Height: 0.5,
			})
		}
		return segs, nil

	case terrainGaps:
		var segs []config.GroundSegment
		x := -halfWidth
		for x < halfWidth {
			w := 1 + rng.Float64()*4
			if x+w > halfWidth {
				w = halfWidth - x
			}
			segs = append(segs, config.GroundSegment{X: x + w/2, Y: -1, Width: w, Height: 2})
			// 缺口
			x += w + 0.5 + rng.Float64()*2.5
		}
		return segs, nil

	case terrainNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown terrain %q (want %s, %s, %s or %s)", kind, terrainFlat, terrainLedges, terrainGaps, terrainNone)
}
