package components

import "github.com/decker502/spherehorde/pkg/utils"

// PositionComponent 实体在世界中的位置（三维，Z 轴向上）
type PositionComponent struct {
	utils.Vec3
}
