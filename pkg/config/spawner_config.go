package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// 玩家不可用时的约束策略
const (
	PlayerPolicySkip   = "skip"   // 无玩家：跳过与玩家的距离检查
	PlayerPolicyReject = "reject" // 无玩家：候选点一律不合格
)

// 配置项取值范围（加载时钳制）
const (
	MinInitialTargetCount = 10
	MaxInitialTargetCount = 30

	DefaultInnerTargetCount = 10

	MinTargetDistance = 80.0
	MaxTargetDistance = 160.0

	MinSpawnRadius = 100.0
	MaxSpawnRadius = 3500.0

	MinGrowthPct = 5.0
	MaxGrowthPct = 100.0

	MinActorScaleLow  = 0.1
	MinActorScaleHigh = 0.9

	MinScaleStep = 0.01
	MaxScaleStep = 0.9

	MinDestroyedPerWave = 10
	MaxDestroyedPerWave = 30

	MinCollisionRadius = 10.0
	MaxCollisionRadius = 80.0
)

// SpawnerConfig 目标生成器配置
// 对应 data/spawner.yaml，描述初始波次规模、间距约束、增长率和缩放衰减
type SpawnerConfig struct {
	TargetClass string `yaml:"targetClass"` // 目标类型ID，交给 ActorFactory；为空视为未配置

	InitialTargetCount int `yaml:"initialTargetCount"` // 首波目标总数 [10, 30]
	InnerTargetCount   int `yaml:"innerTargetCount"`   // 其中内圈目标数 [0, initialTargetCount]

	MinDistanceBetweenTargets float64 `yaml:"minDistanceBetweenTargets"` // 目标间最小距离 [80, 160]
	MinDistanceFromPlayer     float64 `yaml:"minDistanceFromPlayer"`     // 目标与玩家最小距离 [80, 160]，默认同上

	InnerRadius float64 `yaml:"innerRadius"` // 内圈半径 [100, 3500]
	OuterRadius float64 `yaml:"outerRadius"` // 外圈半径 [100, 3500]，不小于内圈

	TargetCountGrowthPct float64 `yaml:"targetCountGrowthPct"` // 每波目标数增长百分比 [5, 100]
	RadiusGrowthPct      float64 `yaml:"radiusGrowthPct"`      // 每波外圈半径增长百分比 [5, 100]

	MinActorScale float64 `yaml:"minActorScale"` // 最小缩放 [0.1, 0.9]
	ScaleStep     float64 `yaml:"scaleStep"`     // 每次放置后的缩放递减量 [0.01, 0.9]

	DestroyedPerWaveThreshold int     `yaml:"destroyedPerWaveThreshold"` // 触发新一波所需的有效击毁数 [10, 30]
	EligibleDistance          float64 `yaml:"eligibleDistance"`          // 击毁点距原点不超过该距离才计数 [100, 3500]

	SpawnUnderPlayer        bool    `yaml:"spawnUnderPlayer"`        // 是否允许目标出现在玩家下方
	PlayerUnavailablePolicy string  `yaml:"playerUnavailablePolicy"` // "skip" 或 "reject"
	TargetCollisionRadius   float64 `yaml:"targetCollisionRadius"`   // 宿主碰撞球半径 [10, 80]

	Seed int64 `yaml:"seed"` // 随机种子，0 表示按时间取种
}

// DefaultSpawnerConfig 返回默认配置（与 data/spawner.yaml 一致）
func DefaultSpawnerConfig() *SpawnerConfig {
	cfg := newSpawnerConfig()
	applySpawnerDefaults(cfg)
	return cfg
}

// newSpawnerConfig 返回预填了合法零值字段默认值的配置
// innerTargetCount 显式写 0 表示全部目标放在外圈，不能按零值补默认
func newSpawnerConfig() *SpawnerConfig {
	return &SpawnerConfig{InnerTargetCount: DefaultInnerTargetCount}
}

// LoadSpawnerConfig 从 YAML 文件加载生成器配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*SpawnerConfig - 已应用默认值并钳制的配置
//	error - 读取、解析或校验失败
func LoadSpawnerConfig(filepath string) (*SpawnerConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawner config file %s: %w", filepath, err)
	}

	cfg, err := ParseSpawnerConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid spawner config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseSpawnerConfig 解析 YAML 数据（用于嵌入的默认配置）
func ParseSpawnerConfig(data []byte) (*SpawnerConfig, error) {
	cfg := newSpawnerConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse spawner config YAML: %w", err)
	}

	applySpawnerDefaults(cfg)

	if err := validateSpawnerConfig(cfg); err != nil {
		return nil, err
	}

	clampSpawnerConfig(cfg)
	return cfg, nil
}

// applySpawnerDefaults 为缺失（零值）的字段填默认值
// InnerTargetCount 例外，其默认值由 newSpawnerConfig 预填
func applySpawnerDefaults(cfg *SpawnerConfig) {
	if cfg.TargetClass == "" {
		cfg.TargetClass = "sphere_target"
	}
	if cfg.InitialTargetCount == 0 {
		cfg.InitialTargetCount = 15
	}
	if cfg.MinDistanceBetweenTargets == 0 {
		cfg.MinDistanceBetweenTargets = 80
	}
	if cfg.MinDistanceFromPlayer == 0 {
		cfg.MinDistanceFromPlayer = cfg.MinDistanceBetweenTargets
	}
	if cfg.InnerRadius == 0 {
		cfg.InnerRadius = 1500
	}
	if cfg.OuterRadius == 0 {
		cfg.OuterRadius = 2000
	}
	if cfg.TargetCountGrowthPct == 0 {
		cfg.TargetCountGrowthPct = 10
	}
	if cfg.RadiusGrowthPct == 0 {
		cfg.RadiusGrowthPct = 5
	}
	if cfg.MinActorScale == 0 {
		cfg.MinActorScale = 0.5
	}
	if cfg.ScaleStep == 0 {
		cfg.ScaleStep = 0.1
	}
	if cfg.DestroyedPerWaveThreshold == 0 {
		cfg.DestroyedPerWaveThreshold = 10
	}
	if cfg.EligibleDistance == 0 {
		cfg.EligibleDistance = 1500
	}
	if cfg.PlayerUnavailablePolicy == "" {
		cfg.PlayerUnavailablePolicy = PlayerPolicySkip
	}
	if cfg.TargetCollisionRadius == 0 {
		cfg.TargetCollisionRadius = 40
	}
}

// validateSpawnerConfig 校验无法通过钳制修正的字段
func validateSpawnerConfig(cfg *SpawnerConfig) error {
	switch cfg.PlayerUnavailablePolicy {
	case PlayerPolicySkip, PlayerPolicyReject:
	default:
		return fmt.Errorf("playerUnavailablePolicy must be one of: skip, reject, got %q", cfg.PlayerUnavailablePolicy)
	}
	return nil
}

// clampSpawnerConfig 将所有数值钳制到允许范围
// 越界值不算错误，只记录一条警告
func clampSpawnerConfig(cfg *SpawnerConfig) {
	cfg.InitialTargetCount = clampInt("initialTargetCount", cfg.InitialTargetCount, MinInitialTargetCount, MaxInitialTargetCount)
	cfg.InnerTargetCount = clampInt("innerTargetCount", cfg.InnerTargetCount, 0, cfg.InitialTargetCount)

	cfg.MinDistanceBetweenTargets = clampFloat("minDistanceBetweenTargets", cfg.MinDistanceBetweenTargets, MinTargetDistance, MaxTargetDistance)
	cfg.MinDistanceFromPlayer = clampFloat("minDistanceFromPlayer", cfg.MinDistanceFromPlayer, MinTargetDistance, MaxTargetDistance)

	cfg.InnerRadius = clampFloat("innerRadius", cfg.InnerRadius, MinSpawnRadius, MaxSpawnRadius)
	cfg.OuterRadius = clampFloat("outerRadius", cfg.OuterRadius, cfg.InnerRadius, MaxSpawnRadius)

	cfg.TargetCountGrowthPct = clampFloat("targetCountGrowthPct", cfg.TargetCountGrowthPct, MinGrowthPct, MaxGrowthPct)
	cfg.RadiusGrowthPct = clampFloat("radiusGrowthPct", cfg.RadiusGrowthPct, MinGrowthPct, MaxGrowthPct)

	cfg.MinActorScale = clampFloat("minActorScale", cfg.MinActorScale, MinActorScaleLow, MinActorScaleHigh)
	cfg.ScaleStep = clampFloat("scaleStep", cfg.ScaleStep, MinScaleStep, MaxScaleStep)

	cfg.DestroyedPerWaveThreshold = clampInt("destroyedPerWaveThreshold", cfg.DestroyedPerWaveThreshold, MinDestroyedPerWave, MaxDestroyedPerWave)
	cfg.EligibleDistance = clampFloat("eligibleDistance", cfg.EligibleDistance, MinSpawnRadius, MaxSpawnRadius)

	cfg.TargetCollisionRadius = clampFloat("targetCollisionRadius", cfg.TargetCollisionRadius, MinCollisionRadius, MaxCollisionRadius)
}

func clampInt(name string, v, lo, hi int) int {
	if v < lo {
		log.Printf("[SpawnerConfig] Warning: %s=%d below %d, clamped", name, v, lo)
		return lo
	}
	if v > hi {
		log.Printf("[SpawnerConfig] Warning: %s=%d above %d, clamped", name, v, hi)
		return hi
	}
	return v
}

func clampFloat(name string, v, lo, hi float64) float64 {
	if v < lo {
		log.Printf("[SpawnerConfig] Warning: %s=%.2f below %.2f, clamped", name, v, lo)
		return lo
	}
	if v > hi {
		log.Printf("[SpawnerConfig] Warning: %s=%.2f above %.2f, clamped", name, v, hi)
		return hi
	}
	return v
}
