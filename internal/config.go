package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type NovaScanConfig struct {
	AppName string `mapstructure:"app_name"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Scan struct {
		BatchSize   int  `mapstructure:"batch_size"`
		Compression bool `mapstructure:"compression"`
	} `mapstructure:"scan"`
}

func LoadConfig(path string) (*NovaScanConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "novascan")
	v.SetDefault("server.addr", ":8866")
	v.SetDefault("scan.batch_size", 1024)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg NovaScanConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
