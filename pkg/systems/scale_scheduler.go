package systems

import "math"

// MaxActorScale 目标的最大（初始）缩放
const MaxActorScale = 1.0

// ScaleScheduler 缩放调度器
//
// 每一波开始时 Reset 回到最大值；每接受一个目标调用一次 Next，
// 先返回当前值再递减 step，钳制在 [minScale, MaxActorScale]。
// 首个目标不豁免：step=0.1 时五个目标依次为 1.0, 0.9, 0.8, 0.7, 0.6。
type ScaleScheduler struct {
	current  float64
	minScale float64
	step     float64
}

// NewScaleScheduler 创建缩放调度器
func NewScaleScheduler(minScale, step float64) *ScaleScheduler {
	if minScale > MaxActorScale {
		minScale = MaxActorScale
	}
	if step < 0 {
		step = 0
	}
	return &ScaleScheduler{
		current:  MaxActorScale,
		minScale: minScale,
		step:     step,
	}
}

// Reset 回到最大缩放
func (s *ScaleScheduler) Reset() {
	s.current = MaxActorScale
}

// Next 返回本次放置使用的缩放，并为下一次递减
func (s *ScaleScheduler) Next() float64 {
	scale := s.current
	s.current = s.clamp(roundScale(s.current - s.step))
	return scale
}

// Current 下一次 Next 将返回的值
func (s *ScaleScheduler) Current() float64 {
	return s.current
}

// MinScale 缩放下限
func (s *ScaleScheduler) MinScale() float64 {
	return s.minScale
}

func (s *ScaleScheduler) clamp(v float64) float64 {
	if v < s.minScale {
		return s.minScale
	}
	if v > MaxActorScale {
		return MaxActorScale
	}
	return v
}

// roundScale 去掉连续减法累积的浮点误差（0.7000000000000001 -> 0.7）
func roundScale(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
