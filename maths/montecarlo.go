package maths

import (
	"fmt"
	"math/rand/v2"
	"quadrature/types"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// monteCarloChunk 分块求均值的块大小，内存占用与采样数无关
const monteCarloChunk = 4096

// MonteCarloOption 蒙特卡洛配置项
type MonteCarloOption func(*monteCarloConfig)

type monteCarloConfig struct {
	src rand.Source
}

// WithSource 指定随机源，nil 视为编程错误
func WithSource(src rand.Source) MonteCarloOption {
	if src == nil {
		panic("maths: WithSource(nil)")
	}
	return func(c *monteCarloConfig) {
		c.src = src
	}
}

// WithSeed 使用固定种子，结果可复现
func WithSeed(seed uint64) MonteCarloOption {
	return func(c *monteCarloConfig) {
		c.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// MonteCarlo 蒙特卡洛积分
// 在积分区域内均匀采样 samples 个点，函数均值乘以区域体积。
// 调用次数恒为 samples，与维数无关。
func MonteCarlo(f types.Integrand, bounds types.Bounds, samples int, opts ...MonteCarloOption) (float64, error) {
	if f == nil {
		return 0, types.ErrNilIntegrand
	}
	if samples < 1 {
		return 0, fmt.Errorf("samples=%d: %w", samples, types.ErrInvalidSampleCount)
	}
	if err := bounds.Validate(); err != nil {
		return 0, err
	}
	// 每次调用独立的随机源
	config := monteCarloConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.src == nil {
		config.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	axes := make([]distuv.Uniform, len(bounds))
	for i, a := range bounds {
		axes[i] = distuv.Uniform{Min: a.Lower, Max: a.Upper, Src: config.src}
	}
	point := make([]float64, len(bounds))
	values := make([]float64, min(samples, monteCarloChunk))
	total := 0.0
	for done := 0; done < samples; {
		chunk := values[:min(monteCarloChunk, samples-done)]
		for i := range chunk {
			for j := range axes {
				point[j] = axes[j].Rand()
			}
			chunk[i] = f(point)
		}
		total += stat.Mean(chunk, nil) * float64(len(chunk))
		done += len(chunk)
	}
	return total / float64(samples) * floats.Prod(bounds.Widths()), nil
}
