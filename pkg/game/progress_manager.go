package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress 跨局保存的最好成绩与偏好
type Progress struct {
	BestWave     int  `yaml:"bestWave"`     // 到达过的最高波次（0-based）
	BestScore    int  `yaml:"bestScore"`    // 单局最高有效击毁数
	TotalKills   int  `yaml:"totalKills"`   // 累计击毁数（含不计分的）
	GamesPlayed  int  `yaml:"gamesPlayed"`  // 已完成的局数
	SoundEnabled bool `yaml:"soundEnabled"` // 击中音效开关
}

// DefaultProgress 返回初始进度
func DefaultProgress() *Progress {
	return &Progress{SoundEnabled: true}
}

// ProgressManager 进度管理器
// 负责进度的加载、保存和内存管理
type ProgressManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	progress     *Progress
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "best"
)

// NewProgressManager 创建进度管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存进度）
//
// 加载失败不是致命错误，使用初始进度
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     DefaultProgress(),
	}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (using defaults)", err)
	}
	return pm
}

// OpenProgressManager 按应用名打开 gdata 存储并创建进度管理器
// gdata 不可用时退回降级模式
func OpenProgressManager(appName string) *ProgressManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[ProgressManager] Warning: gdata unavailable: %v (progress will not persist)", err)
		return NewProgressManager(nil)
	}
	return NewProgressManager(gdataManager)
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil {
		pm.progress = DefaultProgress()
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = DefaultProgress()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = DefaultProgress()
		return fmt.Errorf("failed to load progress: %w", err)
	}

	loaded := DefaultProgress()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		pm.progress = DefaultProgress()
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	pm.progress = loaded
	log.Printf("[ProgressManager] Progress loaded: bestWave=%d, bestScore=%d", loaded.BestWave, loaded.BestScore)
	return nil
}

// Save 保存进度到 gdata
// gdataManager 为 nil 时不报错
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	log.Printf("[ProgressManager] Progress saved")
	return nil
}

// RecordSession 把一局的结果并入进度，返回是否刷新了最好成绩
// 仅修改内存，需调用 Save 持久化
func (pm *ProgressManager) RecordSession(state WaveStateSummary) bool {
	improved := false
	if state.Wave > pm.progress.BestWave {
		pm.progress.BestWave = state.Wave
		improved = true
	}
	if state.Score > pm.progress.BestScore {
		pm.progress.BestScore = state.Score
		improved = true
	}
	pm.progress.TotalKills += state.TotalKills
	pm.progress.GamesPlayed++
	return improved
}

// SetSoundEnabled 设置击中音效开关
func (pm *ProgressManager) SetSoundEnabled(enabled bool) {
	pm.progress.SoundEnabled = enabled
}

// GetProgress 当前进度
func (pm *ProgressManager) GetProgress() *Progress {
	return pm.progress
}

// WaveStateSummary 一局结束时的成绩
type WaveStateSummary struct {
	Wave       int
	Score      int
	TotalKills int
}
