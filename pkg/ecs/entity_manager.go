package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效 ID，可作为"无句柄"使用
type EntityID uint64

// InvalidEntity 无效实体 ID
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
//
// 销毁是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 才真正移除。
// 被标记的实体立即视为"不存活"（IsAlive 返回 false），
// 这样宿主的碰撞判定和生成器的清理都不会再看到它。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体（按标记顺序）
	entitiesToDestroy []EntityID
	pending           map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1,
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
		pending:           make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记或标记不存在的实体是空操作
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, exists := em.components[id]; !exists {
		return
	}
	if _, marked := em.pending[id]; marked {
		return
	}
	em.pending[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsAlive 实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	_, marked := em.pending[id]
	return !marked
}

// EntityCount 返回存活实体数量（不含已标记删除的）
func (em *EntityManager) EntityCount() int {
	return len(em.components) - len(em.pending)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回本次移除的实体（按标记顺序），供调用方分发"已销毁"事件
func (em *EntityManager) RemoveMarkedEntities() []EntityID {
	if len(em.entitiesToDestroy) == 0 {
		return nil
	}
	removed := make([]EntityID, len(em.entitiesToDestroy))
	copy(removed, em.entitiesToDestroy)

	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
		delete(em.pending, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
	return removed
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有存活实体
// 结果按 ID 升序，保证遍历顺序稳定（测试与随机数回放依赖这一点）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if _, marked := em.pending[id]; marked {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
