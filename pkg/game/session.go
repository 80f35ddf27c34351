package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/config"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/entities"
	"github.com/decker502/spherehorde/pkg/systems"
	"github.com/decker502/spherehorde/pkg/utils"
)

// Session 错误
var (
	ErrTargetNotFound = errors.New("target not found")
	ErrNoTargets      = errors.New("no live targets")
	ErrNotStarted     = errors.New("session not started")
)

// KillResult 一次击毁的结果
type KillResult struct {
	Target   systems.Target
	Eligible bool // 是否计入波次阈值
	Advanced bool // 是否触发了新一波
	Report   systems.WaveReport
}

// Session 一局游戏
//
// 持有 EntityManager 与全部生成器协作者，负责把配置装配成
// SpawnVolume / TargetRegistry / ScaleScheduler / PlacementSampler / WaveController。
// 所有方法在同一个 goroutine（游戏循环）中调用。
type Session struct {
	config        *config.SpawnerConfig
	entityManager *ecs.EntityManager
	factory       *entities.TargetFactory
	player        *systems.PlayerTracker
	volume        *systems.SpawnVolume
	registry      *systems.TargetRegistry
	scales        *systems.ScaleScheduler
	sampler       *systems.PlacementSampler
	controller    *systems.WaveController

	started    bool
	lastReport systems.WaveReport
}

// NewSession 按配置创建一局游戏，玩家位于 playerPos
// cfg 为 nil 时使用默认配置
func NewSession(cfg *config.SpawnerConfig, playerPos utils.Vec3) *Session {
	if cfg == nil {
		cfg = config.DefaultSpawnerConfig()
	}

	em := ecs.NewEntityManager()
	factory := entities.NewTargetFactory(em)
	if cfg.TargetClass != "" {
		factory.RegisterClass(cfg.TargetClass, cfg.TargetCollisionRadius)
	}

	player := systems.NewPlayerTracker(em, entities.NewPlayerEntity(em, playerPos))
	volume := systems.NewSpawnVolume(systems.NewRand(cfg.Seed))
	registry := systems.NewTargetRegistry(factory)
	scales := systems.NewScaleScheduler(cfg.MinActorScale, cfg.ScaleStep)

	constraints := systems.DefaultPlacementConstraints()
	constraints.MinDistanceBetweenTargets = cfg.MinDistanceBetweenTargets
	constraints.MinDistanceFromPlayer = cfg.MinDistanceFromPlayer
	constraints.PlayerUnavailable = playerPolicy(cfg.PlayerUnavailablePolicy)

	sampler := systems.NewPlacementSampler(cfg.TargetClass, constraints, volume, registry, factory, player, scales, nil)
	controller := systems.NewWaveController(systems.WaveSettings{
		InnerRadius:               cfg.InnerRadius,
		OuterRadius:               cfg.OuterRadius,
		TargetCountGrowthPct:      cfg.TargetCountGrowthPct,
		RadiusGrowthPct:           cfg.RadiusGrowthPct,
		DestroyedPerWaveThreshold: cfg.DestroyedPerWaveThreshold,
		EligibleDistance:          cfg.EligibleDistance,
		UnderPlayer:               cfg.SpawnUnderPlayer,
	}, volume, sampler, scales, player, nil)
	controller.Initialize(cfg.InitialTargetCount, cfg.InnerTargetCount)

	return &Session{
		config:        cfg,
		entityManager: em,
		factory:       factory,
		player:        player,
		volume:        volume,
		registry:      registry,
		scales:        scales,
		sampler:       sampler,
		controller:    controller,
	}
}

func playerPolicy(name string) systems.PlayerPolicy {
	if name == config.PlayerPolicyReject {
		return systems.PlayerReject
	}
	return systems.PlayerSkip
}

// Start 放置首波
func (s *Session) Start() systems.WaveReport {
	s.started = true
	s.lastReport = s.controller.Start()
	// 放置时被丢弃的候选
	s.entityManager.RemoveMarkedEntities()
	return s.lastReport
}

// DestroyTarget 击毁指定目标并通知波次控制器
func (s *Session) DestroyTarget(handle ecs.EntityID) (KillResult, error) {
	if !s.started {
		return KillResult{}, ErrNotStarted
	}
	target, ok := s.registry.Find(handle)
	if !ok || !s.factory.IsAlive(handle) {
		return KillResult{}, fmt.Errorf("destroy %d: %w", handle, ErrTargetNotFound)
	}

	before := s.controller.DestroyedCount()
	s.factory.Destroy(handle)
	s.entityManager.RemoveMarkedEntities()

	result := KillResult{Target: *target}
	result.Report, result.Advanced = s.controller.OnTargetDestroyed(*target)
	result.Eligible = s.controller.DestroyedCount() > before
	if result.Advanced {
		s.lastReport = result.Report
		s.entityManager.RemoveMarkedEntities()
	}
	return result, nil
}

// ShootNearest 击毁水平距离玩家最近的目标
// 玩家不可用时以生成原点为参照
func (s *Session) ShootNearest() (KillResult, error) {
	if !s.started {
		return KillResult{}, ErrNotStarted
	}
	from, ok := s.player.CurrentPosition()
	if !ok {
		from = s.volume.Origin()
	}
	target, _, ok := s.registry.NearestHorizontal(from)
	if !ok {
		return KillResult{}, ErrNoTargets
	}
	return s.DestroyTarget(target.Handle)
}

// MovePlayer 平移玩家
func (s *Session) MovePlayer(delta utils.Vec3) {
	if p, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.player.Player()); ok {
		p.Vec3 = p.Vec3.Add(delta)
	}
}

// RemovePlayer 移除玩家实体（玩家不可用）
func (s *Session) RemovePlayer() {
	s.entityManager.DestroyEntity(s.player.Player())
	s.entityManager.RemoveMarkedEntities()
}

// RespawnPlayer 在 pos 处重新创建玩家
func (s *Session) RespawnPlayer(pos utils.Vec3) {
	if s.entityManager.IsAlive(s.player.Player()) {
		log.Printf("[Session] Player already alive, moving to %+v", pos)
		s.MovePlayer(pos.Sub(s.mustPlayerPosition()))
		return
	}
	s.player.SetPlayer(entities.NewPlayerEntity(s.entityManager, pos))
}

func (s *Session) mustPlayerPosition() utils.Vec3 {
	pos, _ := s.player.CurrentPosition()
	return pos
}

// PlayerPosition 玩家当前位置
func (s *Session) PlayerPosition() (utils.Vec3, bool) {
	return s.player.CurrentPosition()
}

// Targets 存活目标（放置顺序）
func (s *Session) Targets() []*systems.Target {
	return s.registry.AllLive()
}

// State 波次状态
func (s *Session) State() systems.WaveState {
	return s.controller.State()
}

// Score 有效击毁数
func (s *Session) Score() int {
	return s.controller.DestroyedCount()
}

// Summary 当前局的成绩
func (s *Session) Summary() WaveStateSummary {
	state := s.controller.State()
	return WaveStateSummary{
		Wave:       state.WaveIndex,
		Score:      state.DestroyedCount,
		TotalKills: state.TotalDestroyed,
	}
}

// Volume 生成体积（只读使用）
func (s *Session) Volume() *systems.SpawnVolume {
	return s.volume
}

// LastReport 最近一次波次放置的报告
func (s *Session) LastReport() systems.WaveReport {
	return s.lastReport
}

// Config 当前配置
func (s *Session) Config() *config.SpawnerConfig {
	return s.config
}

// EntityManager 底层实体管理器
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
