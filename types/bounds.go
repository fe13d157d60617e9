package types

import (
	"fmt"
	"math"
	"strings"
)

// Integrand 被积函数，输入为坐标向量
type Integrand func(x []float64) float64

// Func1D 一维被积函数
type Func1D func(x float64) float64

// Lift 将一维函数提升为 Integrand
func Lift(f Func1D) Integrand {
	if f == nil {
		return nil
	}
	return func(x []float64) float64 { return f(x[0]) }
}

// Axis 单个坐标轴上的积分区间
type Axis struct {
	Lower float64 // 下限
	Upper float64 // 上限
}

// Width 区间宽度
func (a Axis) Width() float64 { return a.Upper - a.Lower }

// Validate 校验区间
func (a Axis) Validate() error {
	switch {
	case math.IsNaN(a.Lower) || math.IsNaN(a.Upper):
		return fmt.Errorf("区间 [%v, %v] 含 NaN: %w", a.Lower, a.Upper, ErrInvalidBounds)
	case math.IsInf(a.Lower, 0) || math.IsInf(a.Upper, 0):
		return fmt.Errorf("区间 [%v, %v] 含无穷: %w", a.Lower, a.Upper, ErrInvalidBounds)
	case a.Lower >= a.Upper:
		return fmt.Errorf("下限 %v 不小于上限 %v: %w", a.Lower, a.Upper, ErrInvalidBounds)
	}
	return nil
}

// Bounds 多维积分区域，每个坐标轴一个区间
type Bounds []Axis

// Interval 构建一维积分区域
func Interval(lower, upper float64) Bounds {
	return Bounds{{Lower: lower, Upper: upper}}
}

// Box 构建每个坐标轴相同区间的 d 维积分区域
func Box(lower, upper float64, d int) Bounds {
	b := make(Bounds, d)
	for i := range b {
		b[i] = Axis{Lower: lower, Upper: upper}
	}
	return b
}

// Dim 维数
func (b Bounds) Dim() int { return len(b) }

// Validate 校验所有坐标轴
func (b Bounds) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("积分区域维数为0: %w", ErrInvalidBounds)
	}
	for i, a := range b {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("第 %d 轴: %w", i, err)
		}
	}
	return nil
}

// Widths 各坐标轴宽度
func (b Bounds) Widths() []float64 {
	w := make([]float64, len(b))
	for i, a := range b {
		w[i] = a.Width()
	}
	return w
}

// Volume 积分区域体积
func (b Bounds) Volume() float64 {
	v := 1.0
	for _, a := range b {
		v *= a.Width()
	}
	return v
}

// Clone 复制积分区域
func (b Bounds) Clone() Bounds {
	return append(Bounds(nil), b...)
}

// String 返回积分区域的字符串表示
func (b Bounds) String() string {
	parts := make([]string, len(b))
	for i, a := range b {
		parts[i] = fmt.Sprintf("[%g, %g]", a.Lower, a.Upper)
	}
	return strings.Join(parts, "x")
}
