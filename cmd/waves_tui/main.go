// waves_tui 在终端中以俯视图运行目标波次
//
// 操作：方向键/WASD 移动，空格击毁最近目标，r 重开，m 静音，Esc/q 退出。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/spherehorde/internal/audio"
	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/config"
	"github.com/decker502/spherehorde/pkg/embedded"
	"github.com/decker502/spherehorde/pkg/game"
	"github.com/decker502/spherehorde/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

const (
	appName = "spherehorde"

	// 每个字符格对应的世界距离（横向）；终端字符高约为宽的两倍
	cellWorldWidth  = 80.0
	cellWorldHeight = 160.0

	moveStep = 100.0
)

var (
	configPath = flag.String("config", "", "生成器配置文件路径（默认读取工作目录下的 data/spawner.yaml，不存在时使用内置默认值）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置中的种子）")
	logPath    = flag.String("log", "", "日志输出文件（默认不输出）")
	mute       = flag.Bool("mute", false, "关闭音效")
)

var (
	styleDefault = tcell.StyleDefault
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleInner   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOuter   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleRing    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// Viewer 终端查看器
type Viewer struct {
	screen        tcell.Screen
	width, height int

	spawnerConfig *config.SpawnerConfig
	session       *game.Session
	progress      *game.ProgressManager
	sound         *audio.HitSound
	message       string
}

// NewViewer 创建终端查看器
func NewViewer(cfg *config.SpawnerConfig, progress *game.ProgressManager, sound *audio.HitSound) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &Viewer{
		screen:        screen,
		spawnerConfig: cfg,
		progress:      progress,
		sound:         sound,
	}
	v.width, v.height = screen.Size()
	v.newSession()
	return v, nil
}

func (v *Viewer) newSession() {
	v.session = game.NewSession(v.spawnerConfig, utils.Vec3{})
	report := v.session.Start()
	v.message = fmt.Sprintf("wave %d: %d/%d placed", report.Wave+1, report.Placed(), report.TargetCount)
}

// worldToCell 把世界水平坐标映射到字符格（以 center 为屏幕中心）
func (v *Viewer) worldToCell(p, center utils.Vec3) (int, int) {
	x := v.width/2 + int(math.Round((p.X-center.X)/cellWorldWidth))
	y := v.height/2 - int(math.Round((p.Y-center.Y)/cellWorldHeight))
	return x, y
}

func (v *Viewer) inside(x, y int) bool {
	return x >= 0 && x < v.width && y >= 1 && y < v.height
}

// targetRune 按缩放选择字符
func targetRune(scale float64) rune {
	switch {
	case scale >= 0.85:
		return 'O'
	case scale >= 0.65:
		return 'o'
	default:
		return '.'
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()

	center, ok := v.session.PlayerPosition()
	if !ok {
		center = v.session.Volume().Origin()
	}

	v.drawRing(v.session.Volume().Origin(), v.session.State().SpawnRadius, center)

	for _, target := range v.session.Targets() {
		x, y := v.worldToCell(target.Position, center)
		if !v.inside(x, y) {
			continue
		}
		style := styleOuter
		if target.Region == components.RegionInner {
			style = styleInner
		}
		v.screen.SetContent(x, y, targetRune(target.Scale), nil, style)
	}

	if ok {
		x, y := v.worldToCell(center, center)
		v.screen.SetContent(x, y, '@', nil, stylePlayer)
	}

	state := v.session.State()
	soundLabel := "on"
	if !v.sound.Enabled() {
		soundLabel = "off"
	}
	hud := fmt.Sprintf(" Wave %d  Score %d  Targets %d  Best %d/%d  Sound %s  | %s",
		state.WaveIndex+1, state.DestroyedCount, len(v.session.Targets()),
		v.progress.GetProgress().BestWave+1, v.progress.GetProgress().BestScore, soundLabel, v.message)
	v.drawText(0, 0, hud, styleHUD)

	v.screen.Show()
}

// drawRing 用点画出外圈边界
func (v *Viewer) drawRing(origin utils.Vec3, radius float64, center utils.Vec3) {
	steps := int(2 * math.Pi * radius / cellWorldWidth)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := utils.Vec3{X: origin.X + radius*math.Cos(a), Y: origin.Y + radius*math.Sin(a)}
		x, y := v.worldToCell(p, center)
		if v.inside(x, y) {
			v.screen.SetContent(x, y, '·', nil, styleRing)
		}
	}
}

func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *Viewer) shoot() {
	result, err := v.session.ShootNearest()
	if errors.Is(err, game.ErrNoTargets) {
		v.message = "no targets left"
		return
	}
	if err != nil {
		log.Printf("[waves_tui] Warning: shoot failed: %v", err)
		return
	}

	v.sound.PlayHit(result.Eligible)
	switch {
	case result.Advanced:
		v.sound.PlayWave()
		v.message = fmt.Sprintf("wave %d: %d/%d placed",
			result.Report.Wave+1, result.Report.Placed(), result.Report.TargetCount)
	case !result.Eligible:
		v.message = "too far, not counted"
	default:
		v.message = fmt.Sprintf("hit %s", result.Target.Region)
	}
}

func (v *Viewer) recordProgress() {
	v.progress.RecordSession(v.session.Summary())
	if !*mute {
		v.progress.SetSoundEnabled(v.sound.Enabled())
	}
	if err := v.progress.Save(); err != nil {
		log.Printf("[waves_tui] Warning: failed to save progress: %v", err)
	}
}

// handleInput 返回 false 表示退出
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.session.MovePlayer(utils.Vec3{Y: moveStep})
		case tcell.KeyDown:
			v.session.MovePlayer(utils.Vec3{Y: -moveStep})
		case tcell.KeyLeft:
			v.session.MovePlayer(utils.Vec3{X: -moveStep})
		case tcell.KeyRight:
			v.session.MovePlayer(utils.Vec3{X: moveStep})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.shoot()
			case 'w':
				v.session.MovePlayer(utils.Vec3{Y: moveStep})
			case 's':
				v.session.MovePlayer(utils.Vec3{Y: -moveStep})
			case 'a':
				v.session.MovePlayer(utils.Vec3{X: -moveStep})
			case 'd':
				v.session.MovePlayer(utils.Vec3{X: moveStep})
			case 'r':
				v.recordProgress()
				v.newSession()
			case 'm':
				v.sound.SetEnabled(!v.sound.Enabled())
				if err := v.sound.Initialize(); err != nil {
					log.Printf("[waves_tui] Audio initialization failed: %v", err)
				}
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(v.screen, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

// eventSource 终端事件来源（tcell.Screen 满足）
type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents 在后台转发终端事件
// 屏幕关闭（PollEvent 返回 nil）或 done 关闭后退出并关闭返回的通道
func pollEvents(src eventSource, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// loadSpawnerConfig 以 dir 作为数据目录解析生成器配置
func loadSpawnerConfig(path string, dir fs.FS) (*config.SpawnerConfig, error) {
	embedded.Init(dir)
	return config.ResolveSpawnerConfig(path)
}

func (v *Viewer) cleanup() {
	v.recordProgress()
	v.sound.Cleanup()
	v.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadSpawnerConfig(*configPath, os.DirFS("."))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	progress := game.OpenProgressManager(appName)
	sound := audio.NewHitSound(!*mute && progress.GetProgress().SoundEnabled)
	if err := sound.Initialize(); err != nil {
		// 没有声音也能玩
		log.Printf("[waves_tui] Audio initialization failed: %v", err)
	}

	viewer, err := NewViewer(cfg, progress, sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
