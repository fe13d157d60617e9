package types

// Counter 被积函数调用计数器
type Counter struct {
	calls int
}

// Count 包装被积函数，每次调用计数加一
func Count(f Integrand) (Integrand, *Counter) {
	c := &Counter{}
	return func(x []float64) float64 {
		c.calls++
		return f(x)
	}, c
}

// Calls 返回调用次数
func (c *Counter) Calls() int { return c.calls }

// Reset 计数清零
func (c *Counter) Reset() { c.calls = 0 }
