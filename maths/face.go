package maths

import (
	"math"
	"quadrature/types"
)

// Sum 加权求和结果
type Sum struct {
	Value       float64 // Σ w·f
	Magnitude   float64 // Σ |w·f|，用于判断结果是否仅为舍入残差
	Evaluations int     // 被积函数调用次数
}

// NearZero 判断求和结果是否处于数值精度意义上的零
func (s Sum) NearZero() bool {
	v := math.Abs(s.Value)
	return v <= types.ZeroThreshold || v <= types.Epsilon*s.Magnitude
}

// Add 累加一项加权函数值
func (s *Sum) Add(weight, value float64) {
	term := weight * value
	s.Value += term
	s.Magnitude += math.Abs(term)
}
