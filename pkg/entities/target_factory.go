package entities

import (
	"log"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// TargetFactory 基于 EntityManager 的目标工厂
//
// 实现 systems.ActorFactory 与 systems.TargetTagger：
//   - 每个目标实体带 Position / Collision / Scale / Target 组件
//   - 新目标的碰撞球与任何已有碰撞球重叠时拒绝生成
//   - Destroy 只标记删除，实体在 RemoveMarkedEntities 时真正移除
type TargetFactory struct {
	entityManager *ecs.EntityManager
	classes       map[string]float64
}

// NewTargetFactory 创建目标工厂
func NewTargetFactory(em *ecs.EntityManager) *TargetFactory {
	return &TargetFactory{
		entityManager: em,
		classes:       make(map[string]float64),
	}
}

// RegisterClass 注册一个目标类型及其碰撞半径
func (f *TargetFactory) RegisterClass(classID string, collisionRadius float64) {
	f.classes[classID] = collisionRadius
}

// HasClass 目标类型是否已注册
func (f *TargetFactory) HasClass(classID string) bool {
	_, ok := f.classes[classID]
	return ok
}

// SpawnAt 在 pos 处创建目标
// 类型未注册或碰撞球重叠时返回 (InvalidEntity, false)
func (f *TargetFactory) SpawnAt(classID string, pos utils.Vec3) (ecs.EntityID, bool) {
	radius, ok := f.classes[classID]
	if !ok {
		log.Printf("[TargetFactory] Unknown target class: %s", classID)
		return ecs.InvalidEntity, false
	}
	if f.overlaps(pos, radius) {
		return ecs.InvalidEntity, false
	}

	id := f.entityManager.CreateEntity()
	f.entityManager.AddComponent(id, &components.PositionComponent{Vec3: pos})
	f.entityManager.AddComponent(id, &components.CollisionComponent{Radius: radius})
	f.entityManager.AddComponent(id, &components.ScaleComponent{Scale: 1.0})
	f.entityManager.AddComponent(id, &components.TargetComponent{ClassID: classID})
	return id, true
}

// overlaps 检查半径为 radius 的球是否与已有碰撞球重叠
func (f *TargetFactory) overlaps(pos utils.Vec3, radius float64) bool {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](f.entityManager) {
		other, _ := ecs.GetComponent[*components.PositionComponent](f.entityManager, id)
		collision, _ := ecs.GetComponent[*components.CollisionComponent](f.entityManager, id)
		otherRadius := collision.Radius
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](f.entityManager, id); ok {
			otherRadius *= scale.Scale
		}
		if utils.Distance(pos, other.Vec3) < radius+otherRadius {
			return true
		}
	}
	return false
}

// MoveTo 移动目标，不做碰撞检测
func (f *TargetFactory) MoveTo(handle ecs.EntityID, pos utils.Vec3) {
	if p, ok := ecs.GetComponent[*components.PositionComponent](f.entityManager, handle); ok {
		p.Vec3 = pos
	}
}

// SetScale 设置目标缩放
func (f *TargetFactory) SetScale(handle ecs.EntityID, scale float64) {
	if s, ok := ecs.GetComponent[*components.ScaleComponent](f.entityManager, handle); ok {
		s.Scale = scale
	}
}

// TagTarget 记录目标所属波次与区域
func (f *TargetFactory) TagTarget(handle ecs.EntityID, wave int, region components.SpawnRegion) {
	if t, ok := ecs.GetComponent[*components.TargetComponent](f.entityManager, handle); ok {
		t.Wave = wave
		t.Region = region
	}
}

// Destroy 标记删除目标
func (f *TargetFactory) Destroy(handle ecs.EntityID) {
	f.entityManager.DestroyEntity(handle)
}

// IsAlive 句柄是否有效（已标记删除视为无效）
func (f *TargetFactory) IsAlive(handle ecs.EntityID) bool {
	return f.entityManager.IsAlive(handle)
}
