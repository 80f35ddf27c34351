package systems

import (
	"fmt"
	"log"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/ecs"
	"github.com/decker502/spherehorde/pkg/utils"
)

// ActorFactory 宿主侧的目标实例化能力
//
// 生成器只通过这个接口创建、移动、销毁目标，不关心目标如何渲染或碰撞。
// 句柄为 ecs.EntityID，ecs.InvalidEntity 表示无句柄。
type ActorFactory interface {
	// SpawnAt 尝试在 pos 处创建 classID 类型的目标
	// 宿主可按自身的碰撞规则拒绝，此时返回 (InvalidEntity, false)
	SpawnAt(classID string, pos utils.Vec3) (ecs.EntityID, bool)

	// MoveTo 把已创建的目标移到 pos（不做碰撞检测）
	MoveTo(handle ecs.EntityID, pos utils.Vec3)

	// SetScale 设置目标的统一缩放
	SetScale(handle ecs.EntityID, scale float64)

	// Destroy 释放目标
	Destroy(handle ecs.EntityID)

	// IsAlive 句柄是否仍然有效
	IsAlive(handle ecs.EntityID) bool
}

// TargetTagger 可选能力：宿主想记录目标所属波次/区域时实现
type TargetTagger interface {
	TagTarget(handle ecs.EntityID, wave int, region components.SpawnRegion)
}

// PlayerLocationProvider 提供玩家当前位置
// 没有可控玩家时返回 ok=false
type PlayerLocationProvider interface {
	CurrentPosition() (utils.Vec3, bool)
}

// DiagnosticsSink 非致命诊断输出，不影响控制流
type DiagnosticsSink interface {
	Warn(format string, args ...interface{})
}

// LogDiagnostics 通过标准 log 输出诊断，格式与其他系统一致：
//
//	[PlacementSampler] Warning: ...
type LogDiagnostics struct {
	Prefix string
}

// Warn 实现 DiagnosticsSink
func (d LogDiagnostics) Warn(format string, args ...interface{}) {
	log.Printf("[%s] Warning: %s", d.Prefix, fmt.Sprintf(format, args...))
}

// Target 一个已被接受的目标
type Target struct {
	Handle   ecs.EntityID
	Position utils.Vec3
	Scale    float64
	Region   components.SpawnRegion
	Wave     int
}
