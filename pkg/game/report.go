package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/spherehorde/pkg/systems"
	"github.com/decker502/spherehorde/pkg/utils"
)

// SpacingStats 存活目标的间距统计
type SpacingStats struct {
	Count           int
	MinPairDistance float64 // 没有两个目标时为 +Inf
	MinPlayerDist   float64 // 玩家不可用或没有目标时为 +Inf
	MaxOriginDist   float64
}

// ComputeSpacingStats 计算当前存活目标的间距统计
func (s *Session) ComputeSpacingStats() SpacingStats {
	targets := s.Targets()
	stats := SpacingStats{
		Count:           len(targets),
		MinPairDistance: math.Inf(1),
		MinPlayerDist:   math.Inf(1),
	}
	player, hasPlayer := s.PlayerPosition()
	origin := s.volume.Origin()

	for i, a := range targets {
		for _, b := range targets[i+1:] {
			stats.MinPairDistance = math.Min(stats.MinPairDistance, utils.Distance(a.Position, b.Position))
		}
		if hasPlayer {
			stats.MinPlayerDist = math.Min(stats.MinPlayerDist, utils.Distance(a.Position, player))
		}
		stats.MaxOriginDist = math.Max(stats.MaxOriginDist, utils.Distance(a.Position, origin))
	}
	return stats
}

// FormatWaveReport 单行描述一次波次放置
func FormatWaveReport(r systems.WaveReport) string {
	line := fmt.Sprintf("wave %d: placed %d/%d (inner %d/%d, outer %d/%d) radius=%.1f origin=(%.0f, %.0f, %.0f)",
		r.Wave, r.Placed(), r.TargetCount,
		r.Inner.Placed, r.Inner.Requested, r.Outer.Placed, r.Outer.Requested,
		r.SpawnRadius, r.Origin.X, r.Origin.Y, r.Origin.Z)

	var notes []string
	if r.Inner.Misconfigured || r.Outer.Misconfigured {
		notes = append(notes, "misconfigured")
	}
	if r.Inner.Exhausted || r.Outer.Exhausted {
		notes = append(notes, "under-filled")
	}
	if refused := r.Inner.Refused + r.Outer.Refused; refused > 0 {
		notes = append(notes, fmt.Sprintf("refused=%d", refused))
	}
	if discarded := r.Inner.Discarded + r.Outer.Discarded; discarded > 0 {
		notes = append(notes, fmt.Sprintf("discarded=%d", discarded))
	}
	if len(notes) > 0 {
		line += " [" + strings.Join(notes, ", ") + "]"
	}
	return line
}

// FormatSpacingStats 单行描述间距统计
func FormatSpacingStats(st SpacingStats) string {
	return fmt.Sprintf("live=%d minPair=%s minPlayer=%s maxOrigin=%.1f",
		st.Count, formatDistance(st.MinPairDistance), formatDistance(st.MinPlayerDist), st.MaxOriginDist)
}

func formatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", d)
}
