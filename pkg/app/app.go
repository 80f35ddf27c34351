// Package app 提供俯视图查看器的核心包装器
//
// 该包把配置加载、会话装配和 ebiten 游戏循环从 main 包提取出来。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/config"
	"github.com/decker502/spherehorde/pkg/game"
	"github.com/decker502/spherehorde/pkg/systems"
	"github.com/decker502/spherehorde/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// AppName gdata 存储使用的应用名
const AppName = "spherehorde"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 生成器配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Seed 覆盖配置中的随机种子（0 表示不覆盖）
	Seed int64
}

var (
	colorBackground = color.RGBA{R: 18, G: 22, B: 30, A: 255}
	colorInnerRing  = color.RGBA{R: 80, G: 160, B: 90, A: 255}
	colorOuterRing  = color.RGBA{R: 200, G: 140, B: 60, A: 255}
	colorEligible   = color.RGBA{R: 90, G: 90, B: 140, A: 255}
	colorInner      = color.RGBA{R: 110, G: 220, B: 120, A: 255}
	colorOuter      = color.RGBA{R: 240, G: 170, B: 70, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 180, B: 255, A: 255}
	colorHUD        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// App 实现 ebiten.Game 接口
//
// 操作：WASD/方向键移动，空格或鼠标左键击毁最近目标，
// R 重开一局，F11 切换全屏，Esc 退出。
type App struct {
	spawnerConfig *config.SpawnerConfig
	session       *game.Session
	progress      *game.ProgressManager
	face          text.Face
	verbose       bool
	message       string
	closed        bool
}

// NewApp 创建并初始化查看器
//
// 调用此函数前应先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	spawnerConfig, err := config.ResolveSpawnerConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("生成器配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		spawnerConfig.Seed = cfg.Seed
	}

	a := &App{
		spawnerConfig: spawnerConfig,
		progress:      game.OpenProgressManager(AppName),
		face:          text.NewGoXFace(basicfont.Face7x13),
		verbose:       cfg.Verbose,
	}
	a.newSession()
	return a, nil
}

// newSession 开始新的一局
func (a *App) newSession() {
	a.session = game.NewSession(a.spawnerConfig, utils.Vec3{})
	report := a.session.Start()
	a.message = waveMessage(report)
	log.Printf("[App] New session started (%s)", a.message)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.recordProgress()
		a.newSession()
		return nil
	}

	deltaTime := 1.0 / 60.0
	a.session.MovePlayer(movementInput().Scale(config.PlayerMoveSpeed * deltaTime))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.shoot()
	}
	return nil
}

// movementInput 读取方向输入（世界坐标，Y 轴向上）
func movementInput() utils.Vec3 {
	var dir utils.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	return dir
}

// waveMessage 波次提示，波次从 1 开始显示
func waveMessage(report systems.WaveReport) string {
	return fmt.Sprintf("wave %d: %d/%d targets placed", report.Wave+1, report.Placed(), report.TargetCount)
}

// shoot 击毁最近的目标
func (a *App) shoot() {
	result, err := a.session.ShootNearest()
	if errors.Is(err, game.ErrNoTargets) {
		a.message = "no targets left"
		return
	}
	if err != nil {
		log.Printf("[App] Warning: shoot failed: %v", err)
		return
	}

	switch {
	case result.Advanced:
		a.message = waveMessage(result.Report)
	case !result.Eligible:
		a.message = "too far from spawn origin, not counted"
	default:
		a.message = fmt.Sprintf("hit %s target", result.Target.Region)
	}
}

// recordProgress 把当前局并入进度并保存
func (a *App) recordProgress() {
	if a.progress.RecordSession(a.session.Summary()) {
		log.Printf("[App] New best: wave=%d score=%d",
			a.progress.GetProgress().BestWave, a.progress.GetProgress().BestScore)
	}
	if err := a.progress.Save(); err != nil {
		log.Printf("[App] Warning: failed to save progress: %v", err)
	}
}

// Close 退出前保存进度，重复调用只保存一次
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.recordProgress()
}

// Draw 绘制俯视图
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	center, ok := a.session.PlayerPosition()
	if !ok {
		center = a.session.Volume().Origin()
	}

	a.drawRings(screen, center)
	a.drawTargets(screen, center)
	if ok {
		px, py := config.WorldToScreen(center.X, center.Y, center.X, center.Y)
		vector.FillCircle(screen, float32(px), float32(py), 6, colorPlayer, true)
	}
	a.drawHUD(screen)
}

// drawRings 绘制内外圈和计分范围
func (a *App) drawRings(screen *ebiten.Image, center utils.Vec3) {
	origin := a.session.Volume().Origin()
	state := a.session.State()
	scale := config.ViewScale()
	ox, oy := config.WorldToScreen(origin.X, origin.Y, center.X, center.Y)

	vector.StrokeCircle(screen, float32(ox), float32(oy), float32(state.EligibleDistance*scale), 1, colorEligible, true)
	vector.StrokeCircle(screen, float32(ox), float32(oy), float32(state.InnerRadius*scale), 1, colorInnerRing, true)
	vector.StrokeCircle(screen, float32(ox), float32(oy), float32(state.SpawnRadius*scale), 1, colorOuterRing, true)
}

// drawTargets 按缩放绘制所有存活目标
func (a *App) drawTargets(screen *ebiten.Image, center utils.Vec3) {
	scale := config.ViewScale()
	radius := a.spawnerConfig.TargetCollisionRadius

	for _, target := range a.session.Targets() {
		x, y := config.WorldToScreen(target.Position.X, target.Position.Y, center.X, center.Y)
		r := radius * target.Scale * scale
		if r < 2 {
			r = 2
		}
		clr := colorOuter
		if target.Region == components.RegionInner {
			clr = colorInner
		}
		vector.FillCircle(screen, float32(x), float32(y), float32(r), clr, true)
	}
}

// drawHUD 绘制分数、波次和提示
func (a *App) drawHUD(screen *ebiten.Image) {
	state := a.session.State()
	best := a.progress.GetProgress()

	lines := []string{
		fmt.Sprintf("Wave %d   Score %d   Targets %d", state.WaveIndex+1, state.DestroyedCount, len(a.session.Targets())),
		fmt.Sprintf("Next wave in %d kills", state.DestroyedPerWaveThreshold-state.DestroyedCount%state.DestroyedPerWaveThreshold),
		fmt.Sprintf("Best wave %d   Best score %d", best.BestWave+1, best.BestScore),
		a.message,
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(config.HUDPaddingX, config.HUDPaddingY+float64(i)*config.HUDLineHeight)
		op.ColorScale.ScaleWithColor(colorHUD)
		text.Draw(screen, line, a.face, op)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Session 当前会话
func (a *App) Session() *game.Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
