package types

import "errors"

// 错误分类，调用方通过 errors.Is 判断
var (
	ErrNilIntegrand             = errors.New("quadrature: 被积函数为空")
	ErrInvalidBounds            = errors.New("quadrature: 积分上下限无效")
	ErrInvalidSubdivision       = errors.New("quadrature: 细分数必须为正整数")
	ErrInvalidSampleCount       = errors.New("quadrature: 采样数必须为正整数")
	ErrInvalidTolerance         = errors.New("quadrature: 目标误差必须为正数")
	ErrInvalidParameter         = errors.New("quadrature: 参数无效")
	ErrConvergenceNotGuaranteed = errors.New("quadrature: 达到最大迭代次数仍未收敛")
)
