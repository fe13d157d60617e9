package adaptive

import (
	"fmt"
	"log/slog"
	"math/bits"
	"quadrature/types"
	"strings"
)

// Criterion 收敛判据
type Criterion uint8

// 收敛判据常量定义
const (
	Relative Criterion = iota // |新-旧|/|新| <= tol，新值为零时退化为 |新-旧| <= tol
	Combined                  // |新-旧| <= max(AbsTolerance, tol·|新|)
)

// String 返回判据名称
func (c Criterion) String() string {
	switch c {
	case Relative:
		return "relative"
	case Combined:
		return "combined"
	}
	return "unknown"
}

// ParseCriterion 通过名称获取判据，空字符串为默认判据
func ParseCriterion(name string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relative":
		return Relative, nil
	case "combined":
		return Combined, nil
	}
	return Relative, fmt.Errorf("未知收敛判据 '%s': %w", name, types.ErrInvalidParameter)
}

// maxLatticeBits 量化坐标格点的最大位数（float64 尾数精度内）
const maxLatticeBits = 52

// Config 自适应引擎配置
type Config struct {
	InitialSubdivisions int          // 初始每轴细分数
	MaxIterations       int          // 最大加倍次数
	MaxEvaluations      int          // 被积函数调用预算，0 表示不限制（多维下慎用）
	Criterion           Criterion    // 收敛判据
	AbsTolerance        float64      // Combined 判据的绝对误差容差
	Logger              *slog.Logger // 迭代日志
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		InitialSubdivisions: types.DefaultInitialSubdivisions,
		MaxIterations:       types.DefaultMaxIterations,
		MaxEvaluations:      types.DefaultMaxEvaluations,
		Criterion:           Relative,
		AbsTolerance:        types.DefaultAbsTolerance,
		Logger:              slog.New(slog.DiscardHandler),
	}
}

// Option 配置项
type Option func(*Config)

// WithInitialSubdivisions 设置初始细分数
func WithInitialSubdivisions(n int) Option {
	return func(c *Config) { c.InitialSubdivisions = n }
}

// WithMaxIterations 设置最大加倍次数
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithMaxEvaluations 设置被积函数调用预算
func WithMaxEvaluations(n int) Option {
	return func(c *Config) { c.MaxEvaluations = n }
}

// WithCriterion 设置收敛判据
func WithCriterion(criterion Criterion) Option {
	return func(c *Config) { c.Criterion = criterion }
}

// WithAbsTolerance 设置绝对误差容差
func WithAbsTolerance(tol float64) Option {
	return func(c *Config) { c.AbsTolerance = tol }
}

// WithLogger 设置日志，nil 表示丢弃
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// newConfig 应用配置项并校验
func newConfig(opts []Option) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c, c.Validate()
}

// Validate 校验配置
func (c Config) Validate() error {
	switch {
	case c.InitialSubdivisions < 1:
		return fmt.Errorf("初始细分数 %d: %w", c.InitialSubdivisions, types.ErrInvalidParameter)
	case c.MaxIterations < 1:
		return fmt.Errorf("最大迭代次数 %d: %w", c.MaxIterations, types.ErrInvalidParameter)
	case c.MaxEvaluations < 0:
		return fmt.Errorf("调用预算 %d: %w", c.MaxEvaluations, types.ErrInvalidParameter)
	case c.Criterion != Relative && c.Criterion != Combined:
		return fmt.Errorf("收敛判据 %d: %w", c.Criterion, types.ErrInvalidParameter)
	case c.Criterion == Combined && !(c.AbsTolerance >= 0):
		return fmt.Errorf("绝对误差容差 %v: %w", c.AbsTolerance, types.ErrInvalidParameter)
	case c.latticeBits() > maxLatticeBits:
		return fmt.Errorf("初始细分数 %d 加倍 %d 次超出坐标精度: %w",
			c.InitialSubdivisions, c.MaxIterations, types.ErrInvalidParameter)
	}
	return nil
}

// latticeBits 最细网格每轴节点间隔数 2·n0·2^MaxIterations 所需位数
func (c Config) latticeBits() int {
	return bits.Len(uint(c.InitialSubdivisions)) + c.MaxIterations + 1
}

// finestSubdivisions 最细网格每轴细分数
func (c Config) finestSubdivisions() int64 {
	return int64(c.InitialSubdivisions) << c.MaxIterations
}
