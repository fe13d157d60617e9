// Package quadrature 定积分数值近似：复合中点法、复合辛普森法、蒙特卡洛法，
// 以及中点法与辛普森法的自适应（细分数加倍）版本，均支持 n 维矩形区域。
package quadrature

import (
	"fmt"
	"quadrature/adaptive"
	"quadrature/maths"
	"quadrature/types"
)

// Integral 绑定被积函数与积分区域的不可变对象
// 每次方法调用相互独立，不保留状态
type Integral struct {
	f      types.Integrand
	bounds types.Bounds
}

// New 创建一维积分
func New(f types.Func1D, lower, upper float64) (*Integral, error) {
	if f == nil {
		return nil, types.ErrNilIntegrand
	}
	return NewND(types.Lift(f), types.Interval(lower, upper))
}

// NewND 创建 n 维积分，bounds 为每个坐标轴的 (下限, 上限)
func NewND(f types.Integrand, bounds types.Bounds) (*Integral, error) {
	if f == nil {
		return nil, types.ErrNilIntegrand
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &Integral{f: f, bounds: bounds.Clone()}, nil
}

// Bounds 积分区域（副本）
func (i *Integral) Bounds() types.Bounds { return i.bounds.Clone() }

// Dim 维数
func (i *Integral) Dim() int { return i.bounds.Dim() }

// CompositeMidpoint 复合中点法，每轴 n 个子区间
func (i *Integral) CompositeMidpoint(n int) (float64, error) {
	return maths.Midpoint(i.f, i.bounds, n)
}

// CompositeSimpson 复合辛普森法，每轴 n 个子区间（2n+1 个节点）
func (i *Integral) CompositeSimpson(n int) (float64, error) {
	return maths.Simpson(i.f, i.bounds, n)
}

// MonteCarlo 蒙特卡洛法，samples 个均匀随机采样点
func (i *Integral) MonteCarlo(samples int, opts ...maths.MonteCarloOption) (float64, error) {
	return maths.MonteCarlo(i.f, i.bounds, samples, opts...)
}

// AdaptiveCompositeMidpoint 自适应复合中点法
// 未收敛时返回最佳估计与包装 types.ErrConvergenceNotGuaranteed 的错误
func (i *Integral) AdaptiveCompositeMidpoint(tol float64, opts ...adaptive.Option) (types.Estimate, error) {
	return adaptive.Midpoint(i.f, i.bounds, tol, opts...)
}

// AdaptiveCompositeSimpson 自适应复合辛普森法，加倍时复用已计算节点
func (i *Integral) AdaptiveCompositeSimpson(tol float64, opts ...adaptive.Option) (types.Estimate, error) {
	return adaptive.Simpson(i.f, i.bounds, tol, opts...)
}

// Settings 按方法分发时的附加配置
type Settings struct {
	MonteCarlo []maths.MonteCarloOption
	Adaptive   []adaptive.Option
}

// Evaluate 按方法分发
// 非自适应方法的 param 为细分数或采样数（取整），自适应方法的 param 为目标相对误差
func (i *Integral) Evaluate(method types.Method, param float64, settings Settings) (types.Estimate, error) {
	count := int(param)
	if !method.IsAdaptive() && float64(count) != param {
		return types.Estimate{}, fmt.Errorf("%s 参数 %v 不是整数: %w", method, param, types.ErrInvalidParameter)
	}
	var (
		est types.Estimate
		err error
	)
	switch method {
	case types.MethodMidpoint:
		est, err = plainEstimate(maths.MidpointSum(i.f, i.bounds, count))
		est.Subdivisions = count
	case types.MethodSimpson:
		est, err = plainEstimate(maths.SimpsonSum(i.f, i.bounds, count))
		est.Subdivisions = count
	case types.MethodMonteCarlo:
		est = types.Estimate{Evaluations: count, Converged: true}
		est.Value, err = i.MonteCarlo(count, settings.MonteCarlo...)
	case types.MethodAdaptiveMidpoint:
		return i.AdaptiveCompositeMidpoint(param, settings.Adaptive...)
	case types.MethodAdaptiveSimpson:
		return i.AdaptiveCompositeSimpson(param, settings.Adaptive...)
	default:
		return types.Estimate{}, fmt.Errorf("方法 %s: %w", method, types.ErrInvalidParameter)
	}
	if err != nil {
		return types.Estimate{}, err
	}
	return est, nil
}

// plainEstimate 非自适应求和结果转换为 Estimate
func plainEstimate(sum maths.Sum, err error) (types.Estimate, error) {
	return types.Estimate{Value: sum.Value, Evaluations: sum.Evaluations, Converged: true}, err
}
