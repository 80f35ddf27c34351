package systems

import (
	"fmt"
	"math/rand"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// fakeActor 测试工厂中的一个目标
type fakeActor struct {
	classID string
	pos     utils.Vec3
	scale   float64
	wave    int
	region  components.SpawnRegion
}

// fakeFactory 内存中的 ActorFactory，记录每一次调用
type fakeFactory struct {
	nextID  ecs.EntityID
	actors  map[ecs.EntityID]*fakeActor
	refuse  func(pos utils.Vec3) bool
	spawned int
	moved   int
	killed  int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		nextID: 1,
		actors: make(map[ecs.EntityID]*fakeActor),
	}
}

func (f *fakeFactory) SpawnAt(classID string, pos utils.Vec3) (ecs.EntityID, bool) {
	if f.refuse != nil && f.refuse(pos) {
		return ecs.InvalidEntity, false
	}
	id := f.nextID
	f.nextID++
	f.actors[id] = &fakeActor{classID: classID, pos: pos, scale: MaxActorScale}
	f.spawned++
	return id, true
}

func (f *fakeFactory) MoveTo(handle ecs.EntityID, pos utils.Vec3) {
	if a, ok := f.actors[handle]; ok {
		a.pos = pos
		f.moved++
	}
}

func (f *fakeFactory) SetScale(handle ecs.EntityID, scale float64) {
	if a, ok := f.actors[handle]; ok {
		a.scale = scale
	}
}

func (f *fakeFactory) Destroy(handle ecs.EntityID) {
	if _, ok := f.actors[handle]; ok {
		delete(f.actors, handle)
		f.killed++
	}
}

func (f *fakeFactory) IsAlive(handle ecs.EntityID) bool {
	_, ok := f.actors[handle]
	return ok
}

func (f *fakeFactory) TagTarget(handle ecs.EntityID, wave int, region components.SpawnRegion) {
	if a, ok := f.actors[handle]; ok {
		a.wave = wave
		a.region = region
	}
}

// fakePlayer 可切换可用性的玩家位置
type fakePlayer struct {
	pos       utils.Vec3
	available bool
}

func (p *fakePlayer) CurrentPosition() (utils.Vec3, bool) {
	return p.pos, p.available
}

// recordingDiagnostics 记录诊断而不输出
type recordingDiagnostics struct {
	messages []string
}

func (d *recordingDiagnostics) Warn(format string, args ...interface{}) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// samplerFixture 一套完整的采样协作者
type samplerFixture struct {
	volume   *SpawnVolume
	registry *TargetRegistry
	factory  *fakeFactory
	player   *fakePlayer
	scales   *ScaleScheduler
	diag     *recordingDiagnostics
	sampler  *PlacementSampler
}

// newSamplerFixture 创建固定种子的采样环境
// 体积按 innerRadius/outerRadius 配置并锚定到原点处的玩家
func newSamplerFixture(innerRadius, outerRadius float64, underPlayer bool, c PlacementConstraints) *samplerFixture {
	f := &samplerFixture{
		volume:  NewSpawnVolume(rand.New(rand.NewSource(42))),
		factory: newFakeFactory(),
		player:  &fakePlayer{available: true},
		scales:  NewScaleScheduler(0.5, 0.1),
		diag:    &recordingDiagnostics{},
	}
	f.registry = NewTargetRegistry(f.factory)
	f.volume.Configure(innerRadius, outerRadius, underPlayer)
	f.volume.AnchorTo(f.player.pos)
	f.sampler = NewPlacementSampler("sphere_target", c, f.volume, f.registry, f.factory, f.player, f.scales, f.diag)
	return f
}
