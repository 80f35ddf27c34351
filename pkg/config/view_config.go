package config

// 俯视图参数
// 世界坐标单位与生成半径一致（默认外圈 2000），屏幕坐标为像素
const (
	// GameWindowWidth 是窗口逻辑宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 是窗口逻辑高度（像素）
	GameWindowHeight = 800

	// WorldViewRadius 是俯视图窗口半宽对应的世界距离
	// 需要容纳若干波扩张后的外圈
	WorldViewRadius = 3000.0

	// PlayerMoveSpeed 是玩家每秒移动的世界距离
	PlayerMoveSpeed = 600.0

	// HUDPaddingX HUD 文本左边距
	HUDPaddingX = 10.0

	// HUDPaddingY HUD 文本上边距
	HUDPaddingY = 10.0

	// HUDLineHeight HUD 行高
	HUDLineHeight = 16.0
)

// WorldToScreen 把世界水平坐标映射到以 center 为中心的俯视图屏幕坐标
// 屏幕 Y 轴向下，世界 Y 轴向上
func WorldToScreen(worldX, worldY, centerX, centerY float64) (screenX, screenY float64) {
	scale := ViewScale()
	screenX = float64(GameWindowWidth)/2 + (worldX-centerX)*scale
	screenY = float64(GameWindowHeight)/2 - (worldY-centerY)*scale
	return screenX, screenY
}

// ScreenToWorld WorldToScreen 的逆映射
func ScreenToWorld(screenX, screenY, centerX, centerY float64) (worldX, worldY float64) {
	scale := ViewScale()
	worldX = centerX + (screenX-float64(GameWindowWidth)/2)/scale
	worldY = centerY - (screenY-float64(GameWindowHeight)/2)/scale
	return worldX, worldY
}

// ViewScale 世界距离到像素的比例
func ViewScale() float64 {
	return float64(GameWindowWidth) / 2 / WorldViewRadius
}
