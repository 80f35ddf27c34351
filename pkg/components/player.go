package components

// PlayerComponent 标记玩家实体
// 玩家位置由 PositionComponent 提供；实体不存在时视为"玩家不可用"
type PlayerComponent struct{}
