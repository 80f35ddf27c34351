package systems

import (
	"math/rand"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/utils"
)

// RegionShape 一个采样区域的几何形状
type RegionShape struct {
	// Radius 接受半径：候选点距体积原点超过该值即不合格
	Radius float64

	// Extent 采样盒的半尺寸（每轴）
	Extent utils.Vec3

	// CenterOffset 采样盒中心相对体积原点的偏移
	CenterOffset utils.Vec3
}

// SpawnVolume 生成体积
//
// 由内外两个轴对齐盒组成，中心跟随玩家。
// 只在波次切换时由 WaveController 修改，采样期间只读。
//
// 不允许目标出现在玩家下方时（underPlayer=false）：
//   - 两个盒的竖直半尺寸减半
//   - 原点抬高 zOffset（外圈竖直半尺寸），外圈底面与玩家同高
//   - 内圈中心下移，使内外圈底面重合
type SpawnVolume struct {
	origin      utils.Vec3
	inner       RegionShape
	outer       RegionShape
	zOffset     float64
	underPlayer bool
	rng         *rand.Rand
}

// NewSpawnVolume 创建生成体积
// rng 为 nil 时使用按时间取种的随机源
func NewSpawnVolume(rng *rand.Rand) *SpawnVolume {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	return &SpawnVolume{rng: rng}
}

// Configure 根据内外半径计算两个采样盒
func (v *SpawnVolume) Configure(innerRadius, outerRadius float64, underPlayer bool) {
	if outerRadius < innerRadius {
		outerRadius = innerRadius
	}

	v.underPlayer = underPlayer
	v.inner = RegionShape{
		Radius: innerRadius,
		Extent: utils.Vec3{X: innerRadius, Y: innerRadius, Z: innerRadius},
	}
	v.outer = RegionShape{
		Radius: outerRadius,
		Extent: utils.Vec3{X: outerRadius, Y: outerRadius, Z: outerRadius},
	}
	v.zOffset = 0

	if !underPlayer {
		v.outer.Extent.Z = outerRadius / 2
		v.inner.Extent.Z = innerRadius / 2
		v.zOffset = v.outer.Extent.Z
		v.inner.CenterOffset.Z = v.inner.Extent.Z - v.outer.Extent.Z
	}
}

// AnchorTo 把体积原点放到玩家水平位置，竖直方向加上 zOffset
func (v *SpawnVolume) AnchorTo(player utils.Vec3) {
	v.origin = utils.Vec3{X: player.X, Y: player.Y, Z: player.Z + v.zOffset}
}

// SampleRandomPoint 在指定区域的采样盒内均匀取一点
func (v *SpawnVolume) SampleRandomPoint(region components.SpawnRegion) utils.Vec3 {
	shape := v.Region(region)
	center := v.origin.Add(shape.CenterOffset)
	return utils.Vec3{
		X: center.X + (2*v.rng.Float64()-1)*shape.Extent.X,
		Y: center.Y + (2*v.rng.Float64()-1)*shape.Extent.Y,
		Z: center.Z + (2*v.rng.Float64()-1)*shape.Extent.Z,
	}
}

// Region 返回区域形状
func (v *SpawnVolume) Region(region components.SpawnRegion) RegionShape {
	if region == components.RegionInner {
		return v.inner
	}
	return v.outer
}

// Origin 当前体积原点
func (v *SpawnVolume) Origin() utils.Vec3 {
	return v.origin
}

// ZOffset 原点相对玩家的竖直偏移
func (v *SpawnVolume) ZOffset() float64 {
	return v.zOffset
}

// UnderPlayer 是否允许目标出现在玩家下方
func (v *SpawnVolume) UnderPlayer() bool {
	return v.underPlayer
}
