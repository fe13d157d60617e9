// Package grid 生成求积公式所需的张量积网格（节点与权重）。
package grid

import (
	"fmt"
	"quadrature/types"

	"gonum.org/v1/gonum/floats"
)

// AxisNodes 单个坐标轴上的节点与权重
type AxisNodes struct {
	Nodes   []float64 // 节点坐标（升序）
	Weights []float64 // 对应权重
}

// Len 节点数量
func (a AxisNodes) Len() int { return len(a.Nodes) }

// Grid 张量积网格
// 每个网格点的权重为各轴权重之积
type Grid struct {
	axes []AxisNodes
}

// Midpoint 创建复合中点网格，每轴 n 个子区间中心
func Midpoint(bounds types.Bounds, n int) (*Grid, error) {
	if err := check(bounds, n); err != nil {
		return nil, err
	}
	g := &Grid{axes: make([]AxisNodes, len(bounds))}
	for i, a := range bounds {
		g.axes[i] = midpointAxis(a, n)
	}
	return g, nil
}

// Simpson 创建复合辛普森网格，每轴 2n+1 个等距节点
func Simpson(bounds types.Bounds, n int) (*Grid, error) {
	if err := check(bounds, n); err != nil {
		return nil, err
	}
	g := &Grid{axes: make([]AxisNodes, len(bounds))}
	for i, a := range bounds {
		g.axes[i] = simpsonAxis(a, n)
	}
	return g, nil
}

// check 校验细分数与积分区域
func check(bounds types.Bounds, n int) error {
	if n < 1 {
		return fmt.Errorf("n=%d: %w", n, types.ErrInvalidSubdivision)
	}
	return bounds.Validate()
}

// midpointAxis 单轴中点节点，权重为子区间宽度
func midpointAxis(a types.Axis, n int) AxisNodes {
	h := a.Width() / float64(n)
	nodes := make([]float64, n)
	weights := make([]float64, n)
	for i := range nodes {
		nodes[i] = a.Lower + (float64(i)+0.5)*h
		weights[i] = h
	}
	return AxisNodes{Nodes: nodes, Weights: weights}
}

// simpsonAxis 单轴辛普森节点
// 相邻子区间共享端点，权重为 {1,4,2,4,...,2,4,1}·h/3，h=(upper-lower)/(2n)
func simpsonAxis(a types.Axis, n int) AxisNodes {
	m := 2*n + 1
	nodes := floats.Span(make([]float64, m), a.Lower, a.Upper)
	weights := make([]float64, m)
	for i := range weights {
		switch {
		case i == 0 || i == m-1:
			weights[i] = 1
		case i%2 == 1:
			weights[i] = 4
		default:
			weights[i] = 2
		}
	}
	h := a.Width() / float64(2*n)
	floats.Scale(h/3, weights)
	return AxisNodes{Nodes: nodes, Weights: weights}
}

// Dim 维数
func (g *Grid) Dim() int { return len(g.axes) }

// Axis 获取第 i 轴的节点与权重
func (g *Grid) Axis(i int) AxisNodes { return g.axes[i] }

// Len 网格点总数（各轴节点数之积）
func (g *Grid) Len() int {
	total := 1
	for _, a := range g.axes {
		total *= a.Len()
	}
	return total
}

// EachIndex 按行优先顺序（最后一轴变化最快）遍历所有网格点
// index 与 point 在回调之间复用，回调不得保留
func (g *Grid) EachIndex(fn func(index []int, point []float64, weight float64)) {
	d := len(g.axes)
	index := make([]int, d)
	point := make([]float64, d)
	for i, a := range g.axes {
		point[i] = a.Nodes[0]
	}
	for {
		weight := 1.0
		for i, a := range g.axes {
			weight *= a.Weights[index[i]]
		}
		fn(index, point, weight)
		// 里程表式进位
		k := d - 1
		for ; k >= 0; k-- {
			index[k]++
			if index[k] < g.axes[k].Len() {
				point[k] = g.axes[k].Nodes[index[k]]
				break
			}
			index[k] = 0
			point[k] = g.axes[k].Nodes[0]
		}
		if k < 0 {
			return
		}
	}
}

// Each 遍历所有网格点及其权重
func (g *Grid) Each(fn func(point []float64, weight float64)) {
	g.EachIndex(func(_ []int, point []float64, weight float64) {
		fn(point, weight)
	})
}

// Points 返回有序网格点序列（副本）
func (g *Grid) Points() [][]float64 {
	points := make([][]float64, 0, g.Len())
	g.Each(func(point []float64, _ float64) {
		points = append(points, append([]float64(nil), point...))
	})
	return points
}

// Weights 返回与 Points 顺序一致的权重序列
func (g *Grid) Weights() []float64 {
	weights := make([]float64, 0, g.Len())
	g.Each(func(_ []float64, weight float64) {
		weights = append(weights, weight)
	})
	return weights
}
