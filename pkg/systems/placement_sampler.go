package systems

import (
	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// 尝试次数上限
// 两层循环各 1000 次，最坏情况下一批约 10^6 次约束检查，
// 全部在一次同步调用内完成，可能造成一帧卡顿
const (
	DefaultMaxSpawnAttempts      = 1000
	DefaultMaxRepositionAttempts = 1000
)

// PlayerPolicy 玩家不可用时如何处理与玩家的距离约束
type PlayerPolicy int

const (
	// PlayerSkip 跳过玩家距离检查，其他约束照常
	PlayerSkip PlayerPolicy = iota
	// PlayerReject 候选点一律不合格
	PlayerReject
)

// String 返回策略名
func (p PlayerPolicy) String() string {
	if p == PlayerReject {
		return "reject"
	}
	return "skip"
}

// PlacementConstraints 放置约束
type PlacementConstraints struct {
	MinDistanceBetweenTargets float64
	MinDistanceFromPlayer     float64
	MaxSpawnAttempts          int
	MaxRepositionAttempts     int
	PlayerUnavailable         PlayerPolicy
}

// DefaultPlacementConstraints 返回默认约束（间距 80，尝试上限 1000/1000）
func DefaultPlacementConstraints() PlacementConstraints {
	return PlacementConstraints{
		MinDistanceBetweenTargets: 80,
		MinDistanceFromPlayer:     80,
		MaxSpawnAttempts:          DefaultMaxSpawnAttempts,
		MaxRepositionAttempts:     DefaultMaxRepositionAttempts,
		PlayerUnavailable:         PlayerSkip,
	}
}

// PlacementResult 一次 PlaceBatch 的结果
type PlacementResult struct {
	Requested     int
	Placed        int
	SpawnAttempts int // 外层尝试次数
	Refused       int // 宿主拒绝创建的次数
	Discarded     int // 重定位耗尽后销毁的候选数
	Exhausted     bool
	Misconfigured bool // 未配置目标类型，批次未执行
}

// Satisfied 是否放满了请求数量
func (r PlacementResult) Satisfied() bool {
	return r.Placed == r.Requested
}

// PlacementSampler 放置采样器
//
// 在 SpawnVolume 的某个区域内拒绝采样，直到放满请求数量或外层尝试耗尽：
//  1. 采样一点，请 ActorFactory 在该处创建目标；宿主拒绝则本次尝试作废
//  2. 创建成功后，只要候选点违反约束就重新采样并移动候选（最多 MaxRepositionAttempts 次）
//  3. 重定位耗尽仍不合格：销毁候选，不计入已放置
//  4. 否则接受：登记到 TargetRegistry，向 ScaleScheduler 要缩放
//
// 放不满是可接受的结果，只输出诊断，调用方不重试。
type PlacementSampler struct {
	classID     string
	constraints PlacementConstraints
	volume      *SpawnVolume
	registry    *TargetRegistry
	factory     ActorFactory
	player      PlayerLocationProvider
	scales      *ScaleScheduler
	diag        DiagnosticsSink
	wave        int
}

// NewPlacementSampler 创建放置采样器
// 参数：
//   - classID: 目标类型，为空时 PlaceBatch 不执行
//   - constraints: 放置约束，尝试上限 <= 0 时使用默认值
//   - volume / registry / factory / player / scales: 协作者
//   - diag: 诊断输出，为 nil 时使用 LogDiagnostics
func NewPlacementSampler(
	classID string,
	constraints PlacementConstraints,
	volume *SpawnVolume,
	registry *TargetRegistry,
	factory ActorFactory,
	player PlayerLocationProvider,
	scales *ScaleScheduler,
	diag DiagnosticsSink,
) *PlacementSampler {
	if constraints.MaxSpawnAttempts <= 0 {
		constraints.MaxSpawnAttempts = DefaultMaxSpawnAttempts
	}
	if constraints.MaxRepositionAttempts <= 0 {
		constraints.MaxRepositionAttempts = DefaultMaxRepositionAttempts
	}
	if diag == nil {
		diag = LogDiagnostics{Prefix: "PlacementSampler"}
	}
	return &PlacementSampler{
		classID:     classID,
		constraints: constraints,
		volume:      volume,
		registry:    registry,
		factory:     factory,
		player:      player,
		scales:      scales,
		diag:        diag,
	}
}

// SetWave 设置后续放置的目标所属波次
func (s *PlacementSampler) SetWave(wave int) {
	s.wave = wave
}

// Constraints 返回当前约束
func (s *PlacementSampler) Constraints() PlacementConstraints {
	return s.constraints
}

// PlaceBatch 在 region 内放置 requested 个目标
// radius 为接受半径（距体积原点，边界上的点接受）
func (s *PlacementSampler) PlaceBatch(requested int, region components.SpawnRegion, radius float64) PlacementResult {
	result := PlacementResult{Requested: requested}

	if s.classID == "" || s.factory == nil {
		s.diag.Warn("target class is NOT set, skipping %s batch of %d", region, requested)
		result.Misconfigured = true
		return result
	}
	if requested <= 0 {
		return result
	}

	s.registry.Prune()

	for result.Placed < requested && result.SpawnAttempts < s.constraints.MaxSpawnAttempts {
		result.SpawnAttempts++

		pos := s.volume.SampleRandomPoint(region)
		handle, ok := s.factory.SpawnAt(s.classID, pos)
		if !ok {
			result.Refused++
			continue
		}

		fit := s.fits(pos, radius)
		for attempts := 0; !fit && attempts < s.constraints.MaxRepositionAttempts; attempts++ {
			pos = s.volume.SampleRandomPoint(region)
			s.factory.MoveTo(handle, pos)
			fit = s.fits(pos, radius)
		}

		if !fit {
			s.factory.Destroy(handle)
			result.Discarded++
			s.diag.Warn("failed to find proper position for %s target after %d attempts",
				region, s.constraints.MaxRepositionAttempts)
			continue
		}

		s.accept(handle, pos, region)
		result.Placed++
	}

	if result.Placed < requested {
		result.Exhausted = true
		s.diag.Warn("%s batch under-filled: placed %d of %d in %d attempts (refused=%d, discarded=%d)",
			region, result.Placed, requested, result.SpawnAttempts, result.Refused, result.Discarded)
	}

	s.registry.Prune()
	return result
}

// accept 登记目标并分配缩放
func (s *PlacementSampler) accept(handle ecs.EntityID, pos utils.Vec3, region components.SpawnRegion) {
	scale := MaxActorScale
	if s.scales != nil {
		scale = s.scales.Next()
	}
	s.factory.SetScale(handle, scale)
	if tagger, ok := s.factory.(TargetTagger); ok {
		tagger.TagTarget(handle, s.wave, region)
	}

	s.registry.Add(&Target{
		Handle:   handle,
		Position: pos,
		Scale:    scale,
		Region:   region,
		Wave:     s.wave,
	})
}

// fits 候选点是否满足全部约束
// 比较直接使用约束值，不加容差
func (s *PlacementSampler) fits(pos utils.Vec3, radius float64) bool {
	if utils.Distance(pos, s.volume.Origin()) > radius {
		return false
	}

	if !s.farFromPlayer(pos) {
		return false
	}

	return !s.registry.TooClose(pos, s.constraints.MinDistanceBetweenTargets)
}

// farFromPlayer 与玩家的距离约束；玩家不可用时按策略处理
func (s *PlacementSampler) farFromPlayer(pos utils.Vec3) bool {
	var (
		player utils.Vec3
		ok     bool
	)
	if s.player != nil {
		player, ok = s.player.CurrentPosition()
	}
	if !ok {
		return s.constraints.PlayerUnavailable == PlayerSkip
	}
	return utils.Distance(pos, player) >= s.constraints.MinDistanceFromPlayer
}
