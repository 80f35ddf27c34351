package config

import (
	"fmt"
	"log"

	"github.com/decker502/spherehorde/pkg/embedded"
)

// DefaultSpawnerConfigPath 嵌入的默认配置路径
const DefaultSpawnerConfigPath = "data/spawner.yaml"

// ResolveSpawnerConfig 按优先级获取配置：
//  1. path 非空：从文件系统加载
//  2. 嵌入的 data/spawner.yaml
//  3. 内置默认值
func ResolveSpawnerConfig(path string) (*SpawnerConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading spawner config from %s", path)
		return LoadSpawnerConfig(path)
	}

	if embedded.Exists(DefaultSpawnerConfigPath) {
		data, err := embedded.ReadFile(DefaultSpawnerConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded spawner config: %w", err)
		}
		log.Printf("[Config] Loading embedded spawner config")
		return ParseSpawnerConfig(data)
	}

	log.Printf("[Config] No spawner config found, using built-in defaults")
	return DefaultSpawnerConfig(), nil
}
