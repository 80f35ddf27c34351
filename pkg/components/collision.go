package components

// CollisionComponent 定义实体的碰撞球
// 宿主在生成实体时用它做重叠检测（重叠则拒绝生成）
type CollisionComponent struct {
	Radius float64 // 未缩放的碰撞球半径（世界单位）
}
