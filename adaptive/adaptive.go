// Package adaptive 自适应复合求积：细分数反复加倍，直到相邻两次估计满足目标误差。
//
// 中点法加倍后节点全部移动，每次重新计算；辛普森法加倍后旧节点仍是新网格的节点，
// 按量化坐标缓存函数值，只计算新增节点。
// 达到迭代上限仍未满足误差时返回当前最佳估计，Converged 为 false，
// 同时返回包装 types.ErrConvergenceNotGuaranteed 的错误。
package adaptive

import (
	"fmt"
	"math"
	"quadrature/types"
)

// checkInput 校验公共参数
func checkInput(f types.Integrand, bounds types.Bounds, tol float64) error {
	if f == nil {
		return types.ErrNilIntegrand
	}
	if !(tol > 0) || math.IsInf(tol, 0) {
		return fmt.Errorf("tolerance=%v: %w", tol, types.ErrInvalidTolerance)
	}
	return bounds.Validate()
}

// Midpoint 自适应复合中点法
func Midpoint(f types.Integrand, bounds types.Bounds, tol float64, opts ...Option) (types.Estimate, error) {
	if err := checkInput(f, bounds, tol); err != nil {
		return types.Estimate{}, err
	}
	config, err := newConfig(opts)
	if err != nil {
		return types.Estimate{}, err
	}
	e := &engine{
		config: config,
		tol:    tol,
		step:   &midpointStepper{f: f, bounds: bounds.Clone()},
	}
	return e.run()
}

// Simpson 自适应复合辛普森法
// 每轴细分数 n 对应 2n 个等宽小区间，加倍后小区间数始终为偶数
func Simpson(f types.Integrand, bounds types.Bounds, tol float64, opts ...Option) (types.Estimate, error) {
	if err := checkInput(f, bounds, tol); err != nil {
		return types.Estimate{}, err
	}
	config, err := newConfig(opts)
	if err != nil {
		return types.Estimate{}, err
	}
	e := &engine{
		config: config,
		tol:    tol,
		step: &simpsonStepper{
			f:      f,
			bounds: bounds.Clone(),
			cache:  newNodeCache(bounds, 2*config.finestSubdivisions()),
		},
	}
	return e.run()
}
