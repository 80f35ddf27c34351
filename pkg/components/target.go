package components

// SpawnRegion 目标所属的生成区域
type SpawnRegion int

const (
	// RegionInner 内圈：靠近生成原点
	RegionInner SpawnRegion = iota
	// RegionOuter 外圈：随波次扩张
	RegionOuter
)

// String 返回区域名（日志用）
func (r SpawnRegion) String() string {
	switch r {
	case RegionInner:
		return "inner"
	case RegionOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// TargetComponent 标记一个可被击毁的目标
type TargetComponent struct {
	// ClassID 生成时使用的目标类型
	ClassID string

	// Wave 目标所属波次（0-based，0 为首波）
	Wave int

	// Region 目标所在区域
	Region SpawnRegion
}
