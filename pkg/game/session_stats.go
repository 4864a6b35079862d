package game

import "fmt"

// SessionStats 本局统计
type SessionStats struct {
	Thrown        int // 投出的猫
	HeavyThrown   int // 蓄力投掷次数
	GuardsSpawned int
	GuardsKilled  int
	PlayerHits    int // 玩家被击中次数
	PlayerDead    bool
	Elapsed       float64
}

// String 单行摘要（HUD 与日志共用）
func (s SessionStats) String() string {
	status := "alive"
	if s.PlayerDead {
		status = "dead"
	}
	return fmt.Sprintf("t=%.1fs thrown=%d (heavy %d) spawned=%d killed=%d hits=%d %s",
		s.Elapsed, s.Thrown, s.HeavyThrown, s.GuardsSpawned, s.GuardsKilled, s.PlayerHits, status)
}
