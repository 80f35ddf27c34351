// Package utils 提供生成器与宿主适配层共用的工具函数
//
// vec3.go 提供三维点/向量运算。坐标系约定与宿主一致：
//   - X/Y 为水平面
//   - Z 为竖直方向（向上为正）
package utils

import "math"

// Vec3 三维点或向量（世界单位）
type Vec3 struct {
	X, Y, Z float64
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance 返回两点之间的欧氏距离
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// HorizontalDistance 只计算 XY 平面上的距离（俯视图拾取用）
func HorizontalDistance(a, b Vec3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
