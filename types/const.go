package types

// 默认参数常量定义
var (
	DefaultInitialSubdivisions = 1       // 自适应初始细分数
	DefaultMaxIterations       = 20      // 自适应最大加倍次数
	DefaultMaxEvaluations      = 1 << 22 // 自适应被积函数调用预算，一维 20 次加倍不受此限制
	DefaultSamples             = 1000    // 蒙特卡洛默认采样数
	DefaultAbsTolerance        = 1e-12   // 组合判据的绝对误差容差
)

// 零值判定阈值
const (
	ZeroThreshold = 1e-300 // 绝对零阈值
	Epsilon       = 1e-14  // 相对求和量级的抵消阈值
)
