package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/spherehorde/pkg/app"
	"github.com/decker502/spherehorde/pkg/config"
	"github.com/decker502/spherehorde/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "生成器配置文件路径（默认使用嵌入的 data/spawner.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置中的种子）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Sphere Horde")

	err = ebiten.RunGame(a)
	a.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
