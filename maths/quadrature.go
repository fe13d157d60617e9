package maths

import (
	"quadrature/grid"
	"quadrature/types"
)

// WeightedSum 在网格上计算 Σ w(p)·f(p)
func WeightedSum(f types.Integrand, g *grid.Grid) Sum {
	var s Sum
	g.Each(func(point []float64, weight float64) {
		s.Add(weight, f(point))
		s.Evaluations++
	})
	return s
}

// MidpointSum 复合中点公式，返回完整求和信息
func MidpointSum(f types.Integrand, bounds types.Bounds, n int) (Sum, error) {
	if f == nil {
		return Sum{}, types.ErrNilIntegrand
	}
	g, err := grid.Midpoint(bounds, n)
	if err != nil {
		return Sum{}, err
	}
	return WeightedSum(f, g), nil
}

// SimpsonSum 复合辛普森公式，返回完整求和信息
func SimpsonSum(f types.Integrand, bounds types.Bounds, n int) (Sum, error) {
	if f == nil {
		return Sum{}, types.ErrNilIntegrand
	}
	g, err := grid.Simpson(bounds, n)
	if err != nil {
		return Sum{}, err
	}
	return WeightedSum(f, g), nil
}

// Midpoint 复合中点公式
// 每轴 n 个子区间，共 n^d 次函数调用
func Midpoint(f types.Integrand, bounds types.Bounds, n int) (float64, error) {
	s, err := MidpointSum(f, bounds, n)
	return s.Value, err
}

// Simpson 复合辛普森公式
// 每轴 2n+1 个节点，共 (2n+1)^d 次函数调用；对每轴三次以下多项式精确
func Simpson(f types.Integrand, bounds types.Bounds, n int) (float64, error) {
	s, err := SimpsonSum(f, bounds, n)
	return s.Value, err
}
