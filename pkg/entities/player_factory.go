package entities

import (
	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// PlayerCollisionRadius 玩家碰撞球半径
const PlayerCollisionRadius = 30.0

// NewPlayerEntity 创建玩家实体
// 参数:
//   - manager: EntityManager 实例
//   - pos: 初始位置
//
// 返回: 创建的实体ID
func NewPlayerEntity(manager *ecs.EntityManager, pos utils.Vec3) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PlayerComponent{})
	manager.AddComponent(id, &components.PositionComponent{Vec3: pos})

	// 目标不能生成在玩家身上
	manager.AddComponent(id, &components.CollisionComponent{Radius: PlayerCollisionRadius})

	return id
}
