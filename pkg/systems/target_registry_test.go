package systems

import (
	"math"
	"testing"

	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

func addFakeTarget(t *testing.T, f *fakeFactory, r *TargetRegistry, pos utils.Vec3) *Target {
	t.Helper()
	handle, ok := f.SpawnAt("sphere_target", pos)
	if !ok {
		t.Fatalf("SpawnAt(%+v) refused", pos)
	}
	target := &Target{Handle: handle, Position: pos, Scale: 1}
	r.Add(target)
	return target
}

// TestTargetRegistryPrune 测试 Prune 移除失效句柄并保持顺序
func TestTargetRegistryPrune(t *testing.T) {
	f := newFakeFactory()
	r := NewTargetRegistry(f)

	a := addFakeTarget(t, f, r, utils.Vec3{X: 0})
	b := addFakeTarget(t, f, r, utils.Vec3{X: 100})
	c := addFakeTarget(t, f, r, utils.Vec3{X: 200})

	f.Destroy(b.Handle)

	if r.Count() != 2 {
		t.Errorf("Expected 2 live targets before prune, got %d", r.Count())
	}
	if removed := r.Prune(); removed != 1 {
		t.Errorf("Expected 1 pruned target, got %d", removed)
	}
	if removed := r.Prune(); removed != 0 {
		t.Errorf("Second prune should remove nothing, got %d", removed)
	}

	live := r.AllLive()
	if len(live) != 2 || live[0] != a || live[1] != c {
		t.Errorf("Expected [a c] in placement order, got %v", live)
	}
}

// TestTargetRegistryInvalidHandle 测试无句柄的目标不算存活
func TestTargetRegistryInvalidHandle(t *testing.T) {
	r := NewTargetRegistry(nil)
	r.Add(&Target{Handle: ecs.InvalidEntity})
	r.Add(nil)
	r.Add(&Target{Handle: 7})

	if r.Count() != 1 {
		t.Errorf("Expected 1 live target, got %d", r.Count())
	}
}

// TestTargetRegistryTooClose 测试间距判断使用严格小于
func TestTargetRegistryTooClose(t *testing.T) {
	f := newFakeFactory()
	r := NewTargetRegistry(f)
	addFakeTarget(t, f, r, utils.Vec3{})

	tests := []struct {
		name     string
		p        utils.Vec3
		expected bool
	}{
		{"距离小于间距", utils.Vec3{X: 79.9}, true},
		{"距离恰好等于间距", utils.Vec3{X: 80}, false},
		{"距离大于间距", utils.Vec3{Y: 120}, false},
		{"竖直方向也计入", utils.Vec3{Z: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.TooClose(tt.p, 80); got != tt.expected {
				t.Errorf("TooClose(%+v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}
}

// TestTargetRegistryDistanceQueries 测试最近距离与水平最近目标
func TestTargetRegistryDistanceQueries(t *testing.T) {
	f := newFakeFactory()
	r := NewTargetRegistry(f)

	if d := r.MinDistanceTo(utils.Vec3{}); !math.IsInf(d, 1) {
		t.Errorf("Empty registry should report +Inf, got %f", d)
	}
	if _, _, ok := r.NearestHorizontal(utils.Vec3{}); ok {
		t.Error("Empty registry should have no nearest target")
	}

	high := addFakeTarget(t, f, r, utils.Vec3{X: 30, Z: 900})
	addFakeTarget(t, f, r, utils.Vec3{X: 100})

	if d := r.MinDistanceTo(utils.Vec3{}); math.Abs(d-100) > 1e-9 {
		t.Errorf("Expected min distance 100, got %f", d)
	}

	nearest, d, ok := r.NearestHorizontal(utils.Vec3{})
	if !ok || nearest != high {
		t.Fatalf("Expected the high target to be horizontally nearest, got %+v", nearest)
	}
	if math.Abs(d-30) > 1e-9 {
		t.Errorf("Expected horizontal distance 30, got %f", d)
	}
}

// TestTargetRegistryFindDeadHandle 测试已销毁目标仍可按句柄找到（直到 Prune）
func TestTargetRegistryFindDeadHandle(t *testing.T) {
	f := newFakeFactory()
	r := NewTargetRegistry(f)
	target := addFakeTarget(t, f, r, utils.Vec3{X: 5})

	f.Destroy(target.Handle)
	found, ok := r.Find(target.Handle)
	if !ok || found.Position != target.Position {
		t.Errorf("Expected to find destroyed target before prune")
	}

	r.Prune()
	if _, ok := r.Find(target.Handle); ok {
		t.Error("Pruned target should no longer be found")
	}
}
