package systems

import (
	"math"
	"testing"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/utils"
)

// waveFixture 波次控制器与完整的采样环境
type waveFixture struct {
	*samplerFixture
	controller *WaveController
}

func defaultWaveSettings() WaveSettings {
	return WaveSettings{
		InnerRadius:               800,
		OuterRadius:               1000,
		TargetCountGrowthPct:      10,
		RadiusGrowthPct:           5,
		DestroyedPerWaveThreshold: 10,
		EligibleDistance:          1500,
		UnderPlayer:               false,
	}
}

func newWaveFixture(settings WaveSettings, targetCount, innerCount int) *waveFixture {
	f := newSamplerFixture(settings.InnerRadius, settings.OuterRadius, settings.UnderPlayer, DefaultPlacementConstraints())
	c := NewWaveController(settings, f.volume, f.sampler, f.scales, f.player, f.diag)
	c.Initialize(targetCount, innerCount)
	return &waveFixture{samplerFixture: f, controller: c}
}

// eligibleKill 在体积原点处上报一次击毁
func (w *waveFixture) eligibleKill() (WaveReport, bool) {
	return w.controller.OnTargetDestroyed(Target{Position: w.volume.Origin()})
}

// TestWaveControllerStart 首波放置内外两批
func TestWaveControllerStart(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)

	report := w.controller.Start()

	if report.Wave != 0 {
		t.Errorf("Expected wave 0, got %d", report.Wave)
	}
	if report.Inner.Requested != 10 || report.Outer.Requested != 5 {
		t.Errorf("Expected 10 inner / 5 outer requested, got %d/%d", report.Inner.Requested, report.Outer.Requested)
	}
	if report.Placed() != 15 {
		t.Errorf("Expected 15 placed, got %d", report.Placed())
	}
	if report.Origin.Z != 500 {
		t.Errorf("Expected origin raised by zOffset 500, got %+v", report.Origin)
	}

	for _, target := range w.registry.AllLive() {
		limit := 1000.0
		if target.Region == components.RegionInner {
			limit = 800
		}
		if d := utils.Distance(target.Position, report.Origin); d > limit {
			t.Errorf("%s target at distance %.1f exceeds %.1f", target.Region, d, limit)
		}
	}
}

// TestWaveControllerStartTwice 重复 Start 不再放置
func TestWaveControllerStartTwice(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()
	before := w.registry.Count()

	report := w.controller.Start()

	if report.Placed() != 0 {
		t.Errorf("Second Start should place nothing, placed %d", report.Placed())
	}
	if w.registry.Count() != before {
		t.Errorf("Registry changed from %d to %d", before, w.registry.Count())
	}
}

// TestWaveControllerInitializeFallback 总数小于内圈数时退回默认值
func TestWaveControllerInitializeFallback(t *testing.T) {
	tests := []struct {
		name              string
		total, inner      int
		wantTotal, wantIn int
		wantWarning       bool
	}{
		{"合法参数", 20, 12, 20, 12, false},
		{"总数等于内圈数", 10, 10, 10, 10, false},
		{"总数小于内圈数", 5, 10, FallbackTargetCount, FallbackInnerCount, true},
		{"负数", -1, -3, FallbackTargetCount, FallbackInnerCount, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWaveFixture(defaultWaveSettings(), tt.total, tt.inner)
			state := w.controller.State()
			if state.TargetCount != tt.wantTotal || state.InnerCount != tt.wantIn {
				t.Errorf("Expected %d/%d, got %d/%d", tt.wantTotal, tt.wantIn, state.TargetCount, state.InnerCount)
			}
			if got := len(w.diag.messages) > 0; got != tt.wantWarning {
				t.Errorf("Expected warning=%v, got messages %v", tt.wantWarning, w.diag.messages)
			}
		})
	}
}

// TestWaveControllerGrowth 第一次推进：15 -> 17，半径 1000 -> 1050
func TestWaveControllerGrowth(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()

	var (
		report   WaveReport
		advanced bool
	)
	for i := 0; i < 10; i++ {
		report, advanced = w.eligibleKill()
	}

	if !advanced {
		t.Fatal("Expected the 10th eligible kill to advance the wave")
	}
	state := w.controller.State()
	if state.TargetCount != 17 {
		t.Errorf("Expected targetCount 17, got %d", state.TargetCount)
	}
	if math.Abs(state.SpawnRadius-1050) > 1e-9 {
		t.Errorf("Expected spawnRadius 1050, got %f", state.SpawnRadius)
	}
	if state.WaveIndex != 1 || report.Wave != 1 {
		t.Errorf("Expected wave 1, got state=%d report=%d", state.WaveIndex, report.Wave)
	}
	if report.Inner.Requested != 10 || report.Outer.Requested != 7 {
		t.Errorf("Expected 10 inner / 7 outer requested, got %d/%d", report.Inner.Requested, report.Outer.Requested)
	}
	if math.Abs(w.volume.Region(components.RegionOuter).Radius-1050) > 1e-9 {
		t.Errorf("Expected outer region radius 1050, got %f", w.volume.Region(components.RegionOuter).Radius)
	}
	if w.controller.Phase() != WaveIdle {
		t.Errorf("Expected Idle after advance, got %v", w.controller.Phase())
	}
}

// TestWaveControllerTransitionsOnThresholdOnly 只在第 10、20、30 次有效击毁时推进
func TestWaveControllerTransitionsOnThresholdOnly(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()

	var transitions []int
	for kill := 1; kill <= 30; kill++ {
		if _, advanced := w.eligibleKill(); advanced {
			transitions = append(transitions, kill)
		}
	}

	expected := []int{10, 20, 30}
	if len(transitions) != len(expected) {
		t.Fatalf("Expected transitions at %v, got %v", expected, transitions)
	}
	for i := range expected {
		if transitions[i] != expected[i] {
			t.Errorf("Expected transitions at %v, got %v", expected, transitions)
			break
		}
	}
	if w.controller.Wave() != 3 {
		t.Errorf("Expected wave 3, got %d", w.controller.Wave())
	}
}

// TestWaveControllerIneligibleKills 远处的击毁不计入阈值
func TestWaveControllerIneligibleKills(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()
	far := Target{Position: w.volume.Origin().Add(utils.Vec3{X: 1500.5})}
	edge := Target{Position: w.volume.Origin().Add(utils.Vec3{Y: 1500})}

	for i := 0; i < 25; i++ {
		if _, advanced := w.controller.OnTargetDestroyed(far); advanced {
			t.Fatal("Ineligible kill advanced the wave")
		}
	}
	if _, advanced := w.controller.OnTargetDestroyed(edge); advanced {
		t.Fatal("Single eligible kill advanced the wave")
	}

	state := w.controller.State()
	if state.DestroyedCount != 1 {
		t.Errorf("Expected 1 eligible kill, got %d", state.DestroyedCount)
	}
	if state.TotalDestroyed != 26 {
		t.Errorf("Expected 26 total kills, got %d", state.TotalDestroyed)
	}
}

// TestWaveControllerMonotonicGrowth 目标数与半径跨波次单调不减
func TestWaveControllerMonotonicGrowth(t *testing.T) {
	settings := defaultWaveSettings()
	settings.TargetCountGrowthPct = 5
	w := newWaveFixture(settings, 10, 10)
	w.controller.Start()

	prev := w.controller.State()
	for wave := 1; wave <= 6; wave++ {
		for i := 0; i < settings.DestroyedPerWaveThreshold; i++ {
			w.eligibleKill()
		}
		state := w.controller.State()
		if state.WaveIndex != wave {
			t.Fatalf("Expected wave %d, got %d", wave, state.WaveIndex)
		}
		if state.TargetCount < prev.TargetCount || state.SpawnRadius < prev.SpawnRadius {
			t.Errorf("Wave %d shrank: %d/%.1f -> %d/%.1f",
				wave, prev.TargetCount, prev.SpawnRadius, state.TargetCount, state.SpawnRadius)
		}
		prev = state
	}

	// 10 * 5% = 0.5 四舍五入为 1
	w2 := newWaveFixture(settings, 10, 10)
	w2.controller.Start()
	for i := 0; i < settings.DestroyedPerWaveThreshold; i++ {
		w2.eligibleKill()
	}
	if got := w2.controller.State().TargetCount; got != 11 {
		t.Errorf("Expected 0.5 growth to round up to 11, got %d", got)
	}
}

// TestWaveControllerScalesResetPerWave 每一波的第一个目标缩放回到 1.0
func TestWaveControllerScalesResetPerWave(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()
	for i := 0; i < 10; i++ {
		w.eligibleKill()
	}

	var wave1 []*Target
	for _, target := range w.registry.AllLive() {
		if target.Wave == 1 {
			wave1 = append(wave1, target)
		}
	}
	if len(wave1) == 0 {
		t.Fatal("Expected wave 1 targets")
	}
	if wave1[0].Scale != MaxActorScale {
		t.Errorf("Expected first wave 1 target at scale 1.0, got %f", wave1[0].Scale)
	}
	if len(wave1) > 1 && math.Abs(wave1[1].Scale-0.9) > 1e-9 {
		t.Errorf("Expected second wave 1 target at scale 0.9, got %f", wave1[1].Scale)
	}
}

// TestWaveControllerScalesResetPerBatch 外圈批次的缩放从 1.0 重新开始
func TestWaveControllerScalesResetPerBatch(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	report := w.controller.Start()
	if report.Outer.Placed < 2 {
		t.Fatalf("Expected at least 2 outer targets, got %d", report.Outer.Placed)
	}

	var inner, outer []float64
	for _, target := range w.registry.AllLive() {
		if target.Region == components.RegionInner {
			inner = append(inner, target.Scale)
		} else {
			outer = append(outer, target.Scale)
		}
	}

	for name, scales := range map[string][]float64{"inner": inner, "outer": outer} {
		if scales[0] != MaxActorScale {
			t.Errorf("Expected %s batch to start at 1.0, got %f", name, scales[0])
		}
		for i := 1; i < len(scales); i++ {
			if scales[i] > scales[i-1] {
				t.Errorf("%s scales not non-increasing: %v", name, scales)
				break
			}
		}
	}
	if math.Abs(outer[1]-0.9) > 1e-9 {
		t.Errorf("Expected second outer target at 0.9, got %f", outer[1])
	}
}

// TestWaveControllerIgnoresKillsWhileAdvancing 推进期间到达阈值不触发新的推进
func TestWaveControllerIgnoresKillsWhileAdvancing(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.controller.Start()
	w.controller.state.DestroyedCount = 9
	w.controller.phase = WaveAdvancing

	if _, advanced := w.eligibleKill(); advanced {
		t.Error("Kill during advance should not advance the wave")
	}
	if w.controller.Wave() != 0 {
		t.Errorf("Expected wave 0, got %d", w.controller.Wave())
	}
	if w.controller.DestroyedCount() != 10 {
		t.Errorf("Kill should still be counted, got %d", w.controller.DestroyedCount())
	}
}

// TestWaveControllerPlayerLost 玩家不可用时锚定到最后已知位置
func TestWaveControllerPlayerLost(t *testing.T) {
	w := newWaveFixture(defaultWaveSettings(), 15, 10)
	w.player.pos = utils.Vec3{X: 300, Y: -200}
	w.controller.Start()

	w.player.available = false
	for i := 0; i < 10; i++ {
		w.eligibleKill()
	}

	want := utils.Vec3{X: 300, Y: -200, Z: w.volume.ZOffset()}
	if w.volume.Origin() != want {
		t.Errorf("Expected origin %+v, got %+v", want, w.volume.Origin())
	}
	if len(w.diag.messages) == 0 {
		t.Error("Expected a player unavailable diagnostic")
	}
	if w.controller.Wave() != 1 {
		t.Errorf("Expected wave 1, got %d", w.controller.Wave())
	}
}
