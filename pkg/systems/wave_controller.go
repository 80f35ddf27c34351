package systems

import (
	"log"
	"math"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/utils"
)

// 初始波次参数非法（总数 < 内圈数）时使用的安全默认值
const (
	FallbackTargetCount = 15
	FallbackInnerCount  = 10
)

// WavePhase 波次状态机阶段
type WavePhase int

const (
	// WaveIdle 等待击毁
	WaveIdle WavePhase = iota
	// WaveAdvancing 正在重算参数并放置新一波（同步完成）
	WaveAdvancing
)

// WaveSettings 波次控制器的静态参数（来自配置）
type WaveSettings struct {
	InnerRadius               float64
	OuterRadius               float64
	TargetCountGrowthPct      float64
	RadiusGrowthPct           float64
	DestroyedPerWaveThreshold int
	EligibleDistance          float64
	UnderPlayer               bool
}

// WaveState 波次状态，只由 WaveController 修改
// TargetCount 与 SpawnRadius 跨波次单调不减
type WaveState struct {
	WaveIndex                 int
	TargetCount               int
	InnerCount                int
	SpawnRadius               float64
	InnerRadius               float64
	TargetCountGrowthPct      float64
	RadiusGrowthPct           float64
	DestroyedCount            int // 有效击毁数（计入波次阈值）
	TotalDestroyed            int // 全部击毁数
	DestroyedPerWaveThreshold int
	EligibleDistance          float64
}

// WaveReport 一次波次放置的结果
type WaveReport struct {
	Wave        int
	TargetCount int
	InnerCount  int
	SpawnRadius float64
	Origin      utils.Vec3
	Inner       PlacementResult
	Outer       PlacementResult
}

// Placed 本波实际放置的目标总数
func (r WaveReport) Placed() int {
	return r.Inner.Placed + r.Outer.Placed
}

// WaveController 波次控制器
//
// 两个状态：Idle（等待击毁）和 Advancing（重算参数并放置新一波）。
// 每累计 DestroyedPerWaveThreshold 次有效击毁推进一次：
//  1. 目标数按 TargetCountGrowthPct 增长（四舍五入，0.5 远离零）
//  2. 外圈半径按 RadiusGrowthPct 增长
//  3. 重算 SpawnVolume 并重新锚定到玩家
//  4. 先内圈后外圈各放置一批，每批开始前重置 ScaleScheduler
type WaveController struct {
	state       WaveState
	phase       WavePhase
	underPlayer bool
	started     bool
	lastPlayer  utils.Vec3

	volume  *SpawnVolume
	sampler *PlacementSampler
	scales  *ScaleScheduler
	player  PlayerLocationProvider
	diag    DiagnosticsSink
}

// NewWaveController 创建波次控制器
// 初始目标数为 FallbackTargetCount/FallbackInnerCount，开始前应调用 Initialize
func NewWaveController(
	settings WaveSettings,
	volume *SpawnVolume,
	sampler *PlacementSampler,
	scales *ScaleScheduler,
	player PlayerLocationProvider,
	diag DiagnosticsSink,
) *WaveController {
	if diag == nil {
		diag = LogDiagnostics{Prefix: "WaveController"}
	}
	threshold := settings.DestroyedPerWaveThreshold
	if threshold <= 0 {
		threshold = 10
	}
	outer := settings.OuterRadius
	if outer < settings.InnerRadius {
		outer = settings.InnerRadius
	}

	return &WaveController{
		state: WaveState{
			TargetCount:               FallbackTargetCount,
			InnerCount:                FallbackInnerCount,
			SpawnRadius:               outer,
			InnerRadius:               settings.InnerRadius,
			TargetCountGrowthPct:      settings.TargetCountGrowthPct,
			RadiusGrowthPct:           settings.RadiusGrowthPct,
			DestroyedPerWaveThreshold: threshold,
			EligibleDistance:          settings.EligibleDistance,
		},
		underPlayer: settings.UnderPlayer,
		volume:      volume,
		sampler:     sampler,
		scales:      scales,
		player:      player,
		diag:        diag,
	}
}

// Initialize 设置首波目标总数与内圈数
// 总数小于内圈数（或为负）时退回安全默认值并输出诊断
func (c *WaveController) Initialize(targetCount, innerCount int) {
	if targetCount < innerCount || targetCount < 0 || innerCount < 0 {
		c.diag.Warn("targetCount(%d) < innerCount(%d), please check the values! falling back to %d/%d",
			targetCount, innerCount, FallbackTargetCount, FallbackInnerCount)
		targetCount = FallbackTargetCount
		innerCount = FallbackInnerCount
	}
	c.state.TargetCount = targetCount
	c.state.InnerCount = innerCount
}

// Start 放置首波（波次 0）
// 重复调用只返回空报告
func (c *WaveController) Start() WaveReport {
	if c.started {
		c.diag.Warn("Start called twice, ignored")
		return WaveReport{Wave: c.state.WaveIndex}
	}
	c.started = true
	return c.populate()
}

// OnTargetDestroyed 处理目标被击毁
//
// 只有距体积原点不超过 EligibleDistance 的击毁才计数；
// 计数变化且恰为阈值整数倍时推进一波。
// 返回新一波的报告以及是否发生了推进。
func (c *WaveController) OnTargetDestroyed(target Target) (WaveReport, bool) {
	c.state.TotalDestroyed++

	if !c.isEligible(target) {
		return WaveReport{}, false
	}

	c.state.DestroyedCount++
	log.Printf("[WaveController] Number of the destroyed targets: %d", c.state.DestroyedCount)

	if c.state.DestroyedCount%c.state.DestroyedPerWaveThreshold != 0 {
		return WaveReport{}, false
	}

	if c.phase == WaveAdvancing {
		c.diag.Warn("destruction during wave advance ignored for wave transition")
		return WaveReport{}, false
	}

	return c.advance(), true
}

// isEligible 击毁点是否在计数范围内
func (c *WaveController) isEligible(target Target) bool {
	return utils.Distance(target.Position, c.volume.Origin()) <= c.state.EligibleDistance
}

// advance 增长参数并放置新一波
func (c *WaveController) advance() WaveReport {
	c.phase = WaveAdvancing
	defer func() { c.phase = WaveIdle }()

	growth := math.Round(float64(c.state.TargetCount) * c.state.TargetCountGrowthPct / 100)
	c.state.TargetCount += int(growth)
	c.state.SpawnRadius += c.state.SpawnRadius * c.state.RadiusGrowthPct / 100
	c.state.WaveIndex++

	log.Printf("[WaveController] Starting wave %d: targetCount=%d, spawnRadius=%.1f, growth=%.1f%%",
		c.state.WaveIndex, c.state.TargetCount, c.state.SpawnRadius, c.state.TargetCountGrowthPct)

	return c.populate()
}

// populate 重算体积、锚定玩家并放置内外两批
func (c *WaveController) populate() WaveReport {
	c.volume.Configure(c.state.InnerRadius, c.state.SpawnRadius, c.underPlayer)
	c.anchor()
	c.sampler.SetWave(c.state.WaveIndex)

	report := WaveReport{
		Wave:        c.state.WaveIndex,
		TargetCount: c.state.TargetCount,
		InnerCount:  c.state.InnerCount,
		SpawnRadius: c.state.SpawnRadius,
		Origin:      c.volume.Origin(),
	}
	report.Inner = c.placeBatch(c.state.InnerCount, components.RegionInner, c.state.InnerRadius)
	report.Outer = c.placeBatch(c.state.TargetCount-c.state.InnerCount, components.RegionOuter, c.state.SpawnRadius)

	log.Printf("[WaveController] Wave %d placed %d/%d targets (inner %d/%d, outer %d/%d)",
		report.Wave, report.Placed(), report.TargetCount,
		report.Inner.Placed, report.Inner.Requested, report.Outer.Placed, report.Outer.Requested)
	return report
}

// placeBatch 缩放回到最大值后放置一批
func (c *WaveController) placeBatch(count int, region components.SpawnRegion, radius float64) PlacementResult {
	if c.scales != nil {
		c.scales.Reset()
	}
	return c.sampler.PlaceBatch(count, region, radius)
}

// anchor 把体积锚定到玩家
// 玩家不可用时锚定到最后一次已知位置（从未见过玩家则为世界原点）
func (c *WaveController) anchor() {
	if c.player != nil {
		if pos, ok := c.player.CurrentPosition(); ok {
			c.lastPlayer = pos
			c.volume.AnchorTo(pos)
			return
		}
	}
	c.diag.Warn("player is unavailable, anchoring spawn volume to last known position %+v", c.lastPlayer)
	c.volume.AnchorTo(c.lastPlayer)
}

// State 返回波次状态副本
func (c *WaveController) State() WaveState {
	return c.state
}

// Phase 当前阶段
func (c *WaveController) Phase() WavePhase {
	return c.phase
}

// Wave 当前波次（0-based）
func (c *WaveController) Wave() int {
	return c.state.WaveIndex
}

// DestroyedCount 有效击毁数（HUD 分数）
func (c *WaveController) DestroyedCount() int {
	return c.state.DestroyedCount
}
