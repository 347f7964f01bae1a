package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
// 默认读取 ./configs/config.yaml，可用 AMORIA_CONFIG_PATH 指定其他目录
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path := os.Getenv("AMORIA_CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
