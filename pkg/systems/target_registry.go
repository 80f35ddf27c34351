package systems

import (
	"math"

	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// LivenessChecker 判断句柄是否仍然有效
type LivenessChecker interface {
	IsAlive(handle ecs.EntityID) bool
}

// TargetRegistry 存活目标集合
//
// 顺序即放置顺序。目标会被外部（碰撞/伤害结算）异步销毁，
// 所以任何依赖准确存活数的操作之前都要 Prune。
// 距离查询是 O(存活数) 的线性扫描，几十个目标的规模足够；
// 超过几百个需要空间索引（网格或 k-d 树）。
type TargetRegistry struct {
	targets  []*Target
	liveness LivenessChecker
}

// NewTargetRegistry 创建目标注册表
func NewTargetRegistry(liveness LivenessChecker) *TargetRegistry {
	return &TargetRegistry{
		targets:  make([]*Target, 0, 32),
		liveness: liveness,
	}
}

// Add 追加一个已接受的目标
func (r *TargetRegistry) Add(target *Target) {
	r.targets = append(r.targets, target)
}

// Prune 移除句柄已失效的目标，返回移除数量
func (r *TargetRegistry) Prune() int {
	kept := r.targets[:0]
	for _, t := range r.targets {
		if r.isLive(t) {
			kept = append(kept, t)
		}
	}
	removed := len(r.targets) - len(kept)
	for i := len(kept); i < len(r.targets); i++ {
		r.targets[i] = nil
	}
	r.targets = kept
	return removed
}

// AllLive 返回当前存活目标（按放置顺序）
// 返回的是新切片，调用方可以安全持有
func (r *TargetRegistry) AllLive() []*Target {
	out := make([]*Target, 0, len(r.targets))
	for _, t := range r.targets {
		if r.isLive(t) {
			out = append(out, t)
		}
	}
	return out
}

// Count 存活目标数量
func (r *TargetRegistry) Count() int {
	n := 0
	for _, t := range r.targets {
		if r.isLive(t) {
			n++
		}
	}
	return n
}

// Find 按句柄查找目标（不检查存活）
// 销毁事件到达时句柄已失效，仍需要拿到目标最后的位置
func (r *TargetRegistry) Find(handle ecs.EntityID) (*Target, bool) {
	for _, t := range r.targets {
		if t.Handle == handle {
			return t, true
		}
	}
	return nil, false
}

// TooClose 点 p 与任一存活目标的距离是否小于 minDistance
func (r *TargetRegistry) TooClose(p utils.Vec3, minDistance float64) bool {
	for _, t := range r.targets {
		if !r.isLive(t) {
			continue
		}
		if utils.Distance(p, t.Position) < minDistance {
			return true
		}
	}
	return false
}

// MinDistanceTo 点 p 到最近存活目标的距离，没有目标时返回 +Inf
func (r *TargetRegistry) MinDistanceTo(p utils.Vec3) float64 {
	best := math.Inf(1)
	for _, t := range r.targets {
		if !r.isLive(t) {
			continue
		}
		if d := utils.Distance(p, t.Position); d < best {
			best = d
		}
	}
	return best
}

// NearestHorizontal 返回水平距离最近的存活目标（俯视图拾取）
func (r *TargetRegistry) NearestHorizontal(p utils.Vec3) (*Target, float64, bool) {
	var nearest *Target
	best := math.Inf(1)
	for _, t := range r.targets {
		if !r.isLive(t) {
			continue
		}
		if d := utils.HorizontalDistance(p, t.Position); d < best {
			best = d
			nearest = t
		}
	}
	return nearest, best, nearest != nil
}

func (r *TargetRegistry) isLive(t *Target) bool {
	if t == nil || t.Handle == ecs.InvalidEntity {
		return false
	}
	if r.liveness == nil {
		return true
	}
	return r.liveness.IsAlive(t.Handle)
}
