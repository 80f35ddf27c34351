package systems

import (
	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// PlayerTracker 从 EntityManager 读取玩家位置，实现 PlayerLocationProvider
//
// 玩家实体不存在、已被标记删除或缺少位置组件时视为不可用
type PlayerTracker struct {
	entityManager *ecs.EntityManager
	player        ecs.EntityID
}

// NewPlayerTracker 创建玩家位置提供者
func NewPlayerTracker(em *ecs.EntityManager, player ecs.EntityID) *PlayerTracker {
	return &PlayerTracker{entityManager: em, player: player}
}

// SetPlayer 切换跟踪的玩家实体（重生后使用）
func (p *PlayerTracker) SetPlayer(player ecs.EntityID) {
	p.player = player
}

// Player 当前跟踪的玩家实体
func (p *PlayerTracker) Player() ecs.EntityID {
	return p.player
}

// CurrentPosition 实现 PlayerLocationProvider
func (p *PlayerTracker) CurrentPosition() (utils.Vec3, bool) {
	if p.entityManager == nil || !p.entityManager.IsAlive(p.player) {
		return utils.Vec3{}, false
	}
	if !ecs.HasComponent[*components.PlayerComponent](p.entityManager, p.player) {
		return utils.Vec3{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, p.player)
	if !ok {
		return utils.Vec3{}, false
	}
	return pos.Vec3, true
}
