package grid

import (
	"errors"
	"math"
	"quadrature/types"
	"testing"
)

// TestMidpointAxis 验证一维中点网格的节点位置与权重
func TestMidpointAxis(t *testing.T) {
	g, err := Midpoint(types.Interval(0, 1), 4)
	if err != nil {
		t.Fatalf("Midpoint failed: %v", err)
	}
	expected := []float64{0.125, 0.375, 0.625, 0.875}
	axis := g.Axis(0)
	if axis.Len() != len(expected) {
		t.Fatalf("Expected %d nodes, got %d", len(expected), axis.Len())
	}
	for i, x := range expected {
		if math.Abs(axis.Nodes[i]-x) > 1e-15 {
			t.Errorf("Node %d: expected %v, got %v", i, x, axis.Nodes[i])
		}
		if axis.Weights[i] != 0.25 {
			t.Errorf("Weight %d: expected 0.25, got %v", i, axis.Weights[i])
		}
	}
}

// TestSimpsonAxis 验证一维辛普森网格：2n+1 个节点，权重 {1,4,2,4,1}·h/3
func TestSimpsonAxis(t *testing.T) {
	g, err := Simpson(types.Interval(0, 2), 2)
	if err != nil {
		t.Fatalf("Simpson failed: %v", err)
	}
	axis := g.Axis(0)
	nodes := []float64{0, 0.5, 1, 1.5, 2}
	h := 0.5
	weights := []float64{h / 3, 4 * h / 3, 2 * h / 3, 4 * h / 3, h / 3}
	if axis.Len() != 5 {
		t.Fatalf("Expected 5 nodes, got %d", axis.Len())
	}
	for i := range nodes {
		if math.Abs(axis.Nodes[i]-nodes[i]) > 1e-15 {
			t.Errorf("Node %d: expected %v, got %v", i, nodes[i], axis.Nodes[i])
		}
		if math.Abs(axis.Weights[i]-weights[i]) > 1e-15 {
			t.Errorf("Weight %d: expected %v, got %v", i, weights[i], axis.Weights[i])
		}
	}
	// 权重之和等于区间宽度
	sum := 0.0
	for _, w := range axis.Weights {
		sum += w
	}
	if math.Abs(sum-2) > 1e-14 {
		t.Errorf("Weights should sum to 2, got %v", sum)
	}
}

// TestGridLen 验证网格点数量随维数几何增长
func TestGridLen(t *testing.T) {
	for d := 1; d <= 4; d++ {
		b := types.Box(0, 1, d)
		mid, err := Midpoint(b, 3)
		if err != nil {
			t.Fatalf("Midpoint failed: %v", err)
		}
		if want := int(math.Pow(3, float64(d))); mid.Len() != want {
			t.Errorf("d=%d midpoint: expected %d points, got %d", d, want, mid.Len())
		}
		simp, err := Simpson(b, 3)
		if err != nil {
			t.Fatalf("Simpson failed: %v", err)
		}
		if want := int(math.Pow(7, float64(d))); simp.Len() != want {
			t.Errorf("d=%d simpson: expected %d points, got %d", d, want, simp.Len())
		}
		if got := len(simp.Points()); got != simp.Len() {
			t.Errorf("d=%d: Points() returned %d points, Len() %d", d, got, simp.Len())
		}
	}
}

// TestEachOrder 验证遍历顺序为行优先且权重为各轴权重之积
func TestEachOrder(t *testing.T) {
	b := types.Bounds{{Lower: 0, Upper: 2}, {Lower: 0, Upper: 4}}
	g, err := Midpoint(b, 2)
	if err != nil {
		t.Fatalf("Midpoint failed: %v", err)
	}
	expected := [][]float64{{0.5, 1}, {0.5, 3}, {1.5, 1}, {1.5, 3}}
	points := g.Points()
	for i, p := range expected {
		if points[i][0] != p[0] || points[i][1] != p[1] {
			t.Errorf("Point %d: expected %v, got %v", i, p, points[i])
		}
	}
	for i, w := range g.Weights() {
		if w != 2 {
			t.Errorf("Weight %d: expected 2, got %v", i, w)
		}
	}
}

// TestEachIndex 验证多重下标与坐标一致
func TestEachIndex(t *testing.T) {
	g, err := Simpson(types.Box(-1, 1, 2), 1)
	if err != nil {
		t.Fatalf("Simpson failed: %v", err)
	}
	count := 0
	g.EachIndex(func(index []int, point []float64, _ float64) {
		for k := range index {
			if point[k] != g.Axis(k).Nodes[index[k]] {
				t.Errorf("Index %v does not match point %v", index, point)
			}
		}
		count++
	})
	if count != 9 {
		t.Errorf("Expected 9 visits, got %d", count)
	}
}

// TestInvalidInput 验证非法细分数与上下限
func TestInvalidInput(t *testing.T) {
	if _, err := Midpoint(types.Interval(0, 1), 0); !errors.Is(err, types.ErrInvalidSubdivision) {
		t.Errorf("n=0: expected ErrInvalidSubdivision, got %v", err)
	}
	if _, err := Simpson(types.Interval(0, 1), -3); !errors.Is(err, types.ErrInvalidSubdivision) {
		t.Errorf("n=-3: expected ErrInvalidSubdivision, got %v", err)
	}
	if _, err := Midpoint(types.Interval(1, 1), 2); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("lower == upper: expected ErrInvalidBounds, got %v", err)
	}
	if _, err := Simpson(types.Bounds{{Lower: 0, Upper: 1}, {Lower: 3, Upper: 2}}, 2); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("lower > upper: expected ErrInvalidBounds, got %v", err)
	}
	if _, err := Simpson(nil, 2); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("empty bounds: expected ErrInvalidBounds, got %v", err)
	}
}
