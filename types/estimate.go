package types

import "fmt"

// Estimate 自适应积分结果
type Estimate struct {
	Value         float64 // 积分估计值
	Subdivisions  int     // 最终每轴细分数
	Iterations    int     // 加倍次数
	Evaluations   int     // 被积函数调用次数
	RelativeError float64 // 最后两次估计的误差（分母为零时为绝对误差）
	Converged     bool    // 是否满足目标误差
}

// String 返回结果的字符串表示
func (e Estimate) String() string {
	return fmt.Sprintf("%.12g (n=%d, iter=%d, evals=%d, err=%.3g, converged=%t)",
		e.Value, e.Subdivisions, e.Iterations, e.Evaluations, e.RelativeError, e.Converged)
}
