package components

// ScaleComponent 存储实体级别的统一缩放因子
// 目标生成时由缩放调度器写入：同一批次中越晚放置的目标越小
//
// 渲染和碰撞都以 Scale 为准：
//   - 视觉半径 = CollisionComponent.Radius * Scale
//   - 1.0 = 原始大小，下限由配置 minActorScale 决定
type ScaleComponent struct {
	Scale float64
}
