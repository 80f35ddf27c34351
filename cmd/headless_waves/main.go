// headless_waves 无界面地运行若干局，逐波打印放置报告
//
// 用于调参：检查给定配置下每一波能否放满、间距是否满足约束。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/decker502/spherehorde/pkg/config"
	"github.com/decker502/spherehorde/pkg/game"
	"github.com/decker502/spherehorde/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "生成器配置文件路径（默认使用内置默认值）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置中的种子）")
	runs       = flag.Int("runs", 1, "运行局数（每局种子递增）")
	kills      = flag.Int("kills", 30, "每局击毁次数")
	drift      = flag.Float64("drift", 0, "每次击毁后玩家沿 X 轴移动的距离")
	copyReport = flag.Bool("copy", false, "把报告复制到剪贴板")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg, err := config.ResolveSpawnerConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var out strings.Builder
	for run := 0; run < *runs; run++ {
		runCfg := *cfg
		if runCfg.Seed != 0 {
			runCfg.Seed += int64(run)
		}
		simulate(&out, run, &runCfg)
	}

	fmt.Print(out.String())

	if *copyReport {
		if err := clipboard.WriteAll(out.String()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to copy report: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "report copied to clipboard")
	}
}

// simulate 运行一局并把报告写入 out
func simulate(out *strings.Builder, run int, cfg *config.SpawnerConfig) {
	session := game.NewSession(cfg, utils.Vec3{})
	fmt.Fprintf(out, "== run %d (seed %d) ==\n", run, cfg.Seed)

	report := session.Start()
	fmt.Fprintf(out, "%s\n", game.FormatWaveReport(report))
	fmt.Fprintf(out, "  %s\n", game.FormatSpacingStats(session.ComputeSpacingStats()))

	for i := 0; i < *kills; i++ {
		result, err := session.ShootNearest()
		if errors.Is(err, game.ErrNoTargets) {
			fmt.Fprintf(out, "no targets left after %d kills\n", i)
			break
		}
		if err != nil {
			fmt.Fprintf(out, "kill %d failed: %v\n", i+1, err)
			break
		}
		if result.Advanced {
			fmt.Fprintf(out, "%s\n", game.FormatWaveReport(result.Report))
			fmt.Fprintf(out, "  %s\n", game.FormatSpacingStats(session.ComputeSpacingStats()))
		}
		if *drift != 0 {
			session.MovePlayer(utils.Vec3{X: *drift})
		}
	}

	summary := session.Summary()
	fmt.Fprintf(out, "final: wave=%d score=%d kills=%d live=%d\n\n",
		summary.Wave, summary.Score, summary.TotalKills, len(session.Targets()))
}
