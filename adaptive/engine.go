package adaptive

import (
	"fmt"
	"math"
	"quadrature/grid"
	"quadrature/maths"
	"quadrature/types"
)

// state 自适应状态机状态
type state uint8

// 状态常量定义
const (
	stateInit             state = iota // 计算初始估计
	stateRefine                        // 细分数加倍并比较
	stateConverged                     // 满足目标误差
	stateMaxIterExceeded               // 达到迭代上限或调用预算
)

// String 返回状态名称
func (s state) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateRefine:
		return "REFINE"
	case stateConverged:
		return "CONVERGED"
	case stateMaxIterExceeded:
		return "MAX_ITER_EXCEEDED"
	}
	return "UNKNOWN"
}

// stepper 给定细分数下的一次估计
type stepper interface {
	// name 方法名称（日志用）
	name() string
	// estimate 计算细分数 n 下的估计，Evaluations 为本次新增调用次数
	estimate(n int) (maths.Sum, error)
	// cost 预估细分数 n 下的新增调用次数
	cost(n int) float64
}

// engine 自适应加倍引擎
type engine struct {
	config Config
	step   stepper
	tol    float64
	state  state
}

// run 执行状态机：INIT → REFINE → (CONVERGED | MAX_ITER_EXCEEDED)
func (e *engine) run() (types.Estimate, error) {
	log := e.config.Logger.With("method", e.step.name(), "tolerance", e.tol)
	var (
		result types.Estimate
		prev   maths.Sum
		n      = e.config.InitialSubdivisions
	)
	e.state = stateInit
	for {
		switch e.state {
		case stateInit:
			sum, err := e.step.estimate(n)
			if err != nil {
				return result, err
			}
			prev = sum
			result = types.Estimate{
				Value:         sum.Value,
				Subdivisions:  n,
				Evaluations:   sum.Evaluations,
				RelativeError: math.Inf(1),
			}
			log.Debug("初始估计", "n", n, "estimate", sum.Value)
			e.state = stateRefine

		case stateRefine:
			if result.Iterations >= e.config.MaxIterations || e.overBudget(result.Evaluations, 2*n) {
				e.state = stateMaxIterExceeded
				continue
			}
			n *= 2
			sum, err := e.step.estimate(n)
			if err != nil {
				return result, err
			}
			result.Iterations++
			result.Subdivisions = n
			result.Value = sum.Value
			result.Evaluations += sum.Evaluations
			errValue, ok := e.converged(prev, sum)
			result.RelativeError = errValue
			log.Debug("加倍迭代", "iteration", result.Iterations, "n", n,
				"estimate", sum.Value, "error", errValue, "evaluations", result.Evaluations)
			if ok {
				e.state = stateConverged
			}
			prev = sum

		case stateConverged:
			result.Converged = true
			log.Debug("已收敛", "n", result.Subdivisions, "iterations", result.Iterations, "estimate", result.Value)
			return result, nil

		case stateMaxIterExceeded:
			log.Warn("未收敛", "n", result.Subdivisions, "iterations", result.Iterations,
				"error", result.RelativeError, "evaluations", result.Evaluations)
			return result, fmt.Errorf("%s: n=%d iterations=%d error=%.3g: %w",
				e.step.name(), result.Subdivisions, result.Iterations, result.RelativeError,
				types.ErrConvergenceNotGuaranteed)
		}
	}
}

// overBudget 判断下一次加倍是否会超出调用预算
func (e *engine) overBudget(spent, next int) bool {
	if e.config.MaxEvaluations == 0 {
		return false
	}
	return float64(spent)+e.step.cost(next) > float64(e.config.MaxEvaluations)
}

// converged 收敛判定，返回误差值与是否满足容差
// 新估计处于零附近时使用绝对误差，不做除法
func (e *engine) converged(prev, curr maths.Sum) (float64, bool) {
	diff := math.Abs(curr.Value - prev.Value)
	var errValue float64
	if curr.NearZero() {
		errValue = diff
	} else {
		errValue = diff / math.Abs(curr.Value)
	}
	switch e.config.Criterion {
	case Combined:
		return errValue, diff <= math.Max(e.config.AbsTolerance, e.tol*math.Abs(curr.Value))
	default:
		return errValue, errValue <= e.tol
	}
}

// midpointStepper 中点加倍：节点全部移动，每次重新计算
type midpointStepper struct {
	f      types.Integrand
	bounds types.Bounds
}

func (s *midpointStepper) name() string { return types.MethodAdaptiveMidpoint.String() }

func (s *midpointStepper) estimate(n int) (maths.Sum, error) {
	return maths.MidpointSum(s.f, s.bounds, n)
}

func (s *midpointStepper) cost(n int) float64 {
	return math.Pow(float64(n), float64(len(s.bounds)))
}

// simpsonStepper 辛普森加倍：旧节点在细网格上位置不变，只计算新增节点
type simpsonStepper struct {
	f      types.Integrand
	bounds types.Bounds
	cache  *nodeCache
}

func (s *simpsonStepper) name() string { return types.MethodAdaptiveSimpson.String() }

func (s *simpsonStepper) estimate(n int) (maths.Sum, error) {
	g, err := grid.Simpson(s.bounds, n)
	if err != nil {
		return maths.Sum{}, err
	}
	var sum maths.Sum
	g.Each(func(point []float64, weight float64) {
		value, ok := s.cache.get(point)
		if !ok {
			value = s.f(point)
			s.cache.put(point, value)
			sum.Evaluations++
		}
		sum.Add(weight, value)
	})
	return sum, nil
}

// cost 细分数 n 的节点数 (2n+1)^d 减去上一层 (n+1)^d 个已缓存节点
func (s *simpsonStepper) cost(n int) float64 {
	d := float64(len(s.bounds))
	return math.Pow(float64(2*n+1), d) - math.Pow(float64(n+1), d)
}
