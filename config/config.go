// Package config 读取命令行批量运行所用的 YAML 配置。
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"quadrature"
	"quadrature/adaptive"
	"quadrature/maths"
	"quadrature/types"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate 配置校验器
var validate = validator.New()

// Config 运行配置，Seed 为空时蒙特卡洛每次使用新的随机源
type Config struct {
	Engine   EngineConfig `yaml:"engine"`
	Seed     *uint64      `yaml:"seed,omitempty"`
	LogLevel string       `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Runs     []RunConfig  `yaml:"runs" validate:"dive"`
}

// EngineConfig 自适应引擎参数
type EngineConfig struct {
	InitialSubdivisions int     `yaml:"initial_subdivisions" validate:"gte=1"`
	MaxIterations       int     `yaml:"max_iterations" validate:"gte=1,lte=50"`
	MaxEvaluations      int     `yaml:"max_evaluations" validate:"gte=0"`
	Criterion           string  `yaml:"criterion" validate:"omitempty,oneof=relative combined"`
	AbsTolerance        float64 `yaml:"abs_tolerance" validate:"gte=0"`
}

// RunConfig 单个被积函数的运行配置，Bounds 每轴为 [下限, 上限]
type RunConfig struct {
	Integrand string         `yaml:"integrand" validate:"required"`
	Bounds    [][]float64    `yaml:"bounds" validate:"required,min=1,dive,len=2"`
	Methods   []MethodConfig `yaml:"methods" validate:"required,min=1,dive"`
}

// MethodConfig 方法与参数
// 非自适应方法的参数为细分数或采样数，自适应方法的参数为目标相对误差
type MethodConfig struct {
	Method string  `yaml:"method" validate:"required,oneof=midpoint simpson monte-carlo adaptive-midpoint adaptive-simpson"`
	Param  float64 `yaml:"param" validate:"gt=0"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	defaults := adaptive.DefaultConfig()
	return Config{
		Engine: EngineConfig{
			InitialSubdivisions: defaults.InitialSubdivisions,
			MaxIterations:       defaults.MaxIterations,
			MaxEvaluations:      defaults.MaxEvaluations,
			Criterion:           defaults.Criterion.String(),
			AbsTolerance:        defaults.AbsTolerance,
		},
		LogLevel: "info",
	}
}

// Load 从文件读取配置
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析配置，未给出的字段取默认值
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", types.ErrInvalidParameter, err)
	}
	for i, run := range c.Runs {
		if _, err := run.AxisBounds(); err != nil {
			return fmt.Errorf("第 %d 个运行: %w", i, err)
		}
	}
	return nil
}

// AxisBounds 转换为积分区域
func (r RunConfig) AxisBounds() (types.Bounds, error) {
	b := make(types.Bounds, len(r.Bounds))
	for i, pair := range r.Bounds {
		if len(pair) != 2 {
			return nil, fmt.Errorf("第 %d 轴需要 [下限, 上限]: %w", i, types.ErrInvalidBounds)
		}
		b[i] = types.Axis{Lower: pair[0], Upper: pair[1]}
	}
	return b, b.Validate()
}

// EngineOptions 转换为自适应引擎配置项
func (c *Config) EngineOptions(logger *slog.Logger) ([]adaptive.Option, error) {
	criterion, err := adaptive.ParseCriterion(c.Engine.Criterion)
	if err != nil {
		return nil, err
	}
	return []adaptive.Option{
		adaptive.WithInitialSubdivisions(c.Engine.InitialSubdivisions),
		adaptive.WithMaxIterations(c.Engine.MaxIterations),
		adaptive.WithMaxEvaluations(c.Engine.MaxEvaluations),
		adaptive.WithCriterion(criterion),
		adaptive.WithAbsTolerance(c.Engine.AbsTolerance),
		adaptive.WithLogger(logger),
	}, nil
}

// Settings 转换为方法分发配置
func (c *Config) Settings(logger *slog.Logger) (quadrature.Settings, error) {
	opts, err := c.EngineOptions(logger)
	if err != nil {
		return quadrature.Settings{}, err
	}
	settings := quadrature.Settings{Adaptive: opts}
	if c.Seed != nil {
		settings.MonteCarlo = []maths.MonteCarloOption{maths.WithSeed(*c.Seed)}
	}
	return settings, nil
}

// Logger 按配置等级创建文本日志
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
