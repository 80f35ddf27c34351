// Package audio 提供终端查看器的击中音效
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// 计分击毁 / 不计分击毁 / 新一波
	hitFrequency     = 880.0
	missFrequency    = 330.0
	waveFrequencyLow = 523.25
	waveFrequencyHi  = 1046.5

	hitDuration  = 60 * time.Millisecond
	waveDuration = 120 * time.Millisecond
)

// HitSound 击中音效播放器
// 初始化失败不是致命错误，之后所有 Play 调用都是空操作
type HitSound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
}

// NewHitSound 创建音效播放器
func NewHitSound(enabled bool) *HitSound {
	return &HitSound{
		mixer:   &beep.Mixer{},
		enabled: enabled,
	}
}

// Initialize 初始化扬声器
func (h *HitSound) Initialize() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.initialized || !h.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(h.mixer)
	h.initialized = true
	return nil
}

// SetEnabled 开关音效
func (h *HitSound) SetEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enabled = enabled
}

// Enabled 音效是否开启
func (h *HitSound) Enabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled
}

// PlayHit 击毁一个目标；counted 为是否计入波次
func (h *HitSound) PlayHit(counted bool) {
	freq := hitFrequency
	if !counted {
		freq = missFrequency
	}
	h.play(tone(freq, hitDuration))
}

// PlayWave 新一波开始：低高两个音
func (h *HitSound) PlayWave() {
	h.play(beep.Seq(tone(waveFrequencyLow, waveDuration), tone(waveFrequencyHi, waveDuration)))
}

func (h *HitSound) play(s beep.Streamer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized || !h.enabled || s == nil {
		return
	}
	speaker.Lock()
	h.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup 停止所有声音并关闭扬声器
func (h *HitSound) Cleanup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		return
	}
	speaker.Lock()
	h.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	h.initialized = false
}

// tone 生成一段带线性衰减的正弦音
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return &fade{
		Streamer: beep.Take(sampleRate.N(d), sine),
		total:    sampleRate.N(d),
		gain:     0.3,
	}
}

// fade 线性淡出，避免截断时的爆音
type fade struct {
	beep.Streamer
	total int
	pos   int
	gain  float64
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		k := f.gain * math.Max(0, 1-float64(f.pos)/float64(f.total))
		samples[i][0] *= k
		samples[i][1] *= k
		f.pos++
	}
	return n, ok
}
