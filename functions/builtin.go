package functions

import (
	"math"
	"quadrature/types"
)

// register 注册内置函数
func register(name, description string, dim int, f types.Integrand, exact func(types.Bounds) float64) {
	Register(Function{Name: name, Description: description, Dim: dim, Integrand: f, Exact: exact})
}

func init() {
	// 一维
	register("x2", "f(x) = x^2", 1,
		types.Lift(func(x float64) float64 { return x * x }), monomial(2, 1))
	register("x3", "f(x) = x^3 / 10^3", 1,
		types.Lift(func(x float64) float64 { return x * x * x / 1e3 }), monomial(3, 1e3))
	register("x4", "f(x) = x^4 / 10^4", 1,
		types.Lift(func(x float64) float64 { return math.Pow(x, 4) / 1e4 }), monomial(4, 1e4))
	register("x5", "f(x) = x^5 / 10^5", 1,
		types.Lift(func(x float64) float64 { return math.Pow(x, 5) / 1e5 }), monomial(5, 1e5))
	register("sin", "f(x) = sin(x)", 1, types.Lift(math.Sin), func(b types.Bounds) float64 {
		return math.Cos(b[0].Lower) - math.Cos(b[0].Upper)
	})
	register("exp", "f(x) = exp(x)", 1, types.Lift(math.Exp), func(b types.Bounds) float64 {
		return math.Exp(b[0].Upper) - math.Exp(b[0].Lower)
	})

	// 二维
	register("sin-sum", "f(x, y) = sin(x + y)", 2, func(p []float64) float64 {
		return math.Sin(p[0] + p[1])
	}, func(b types.Bounds) float64 {
		x, y := b[0], b[1]
		return -math.Sin(x.Upper+y.Upper) + math.Sin(x.Lower+y.Upper) +
			math.Sin(x.Upper+y.Lower) - math.Sin(x.Lower+y.Lower)
	})
	register("exp-sum", "f(x, y) = exp(x + y)", 2, func(p []float64) float64 {
		return math.Exp(p[0] + p[1])
	}, func(b types.Bounds) float64 {
		x, y := b[0], b[1]
		return (math.Exp(x.Upper) - math.Exp(x.Lower)) * (math.Exp(y.Upper) - math.Exp(y.Lower))
	})

	// 任意维
	register("square-sum", "f(x1..xd) = (x1 + ... + xd)^2", 0, func(p []float64) float64 {
		s := 0.0
		for _, x := range p {
			s += x
		}
		return s * s
	}, squareSum)
	register("zero", "f(x1..xd) = 0", 0, func([]float64) float64 { return 0 }, func(types.Bounds) float64 { return 0 })
	register("one", "f(x1..xd) = 1", 0, func([]float64) float64 { return 1 }, types.Bounds.Volume)
}

// monomial ∫ x^k / scale dx
func monomial(k int, scale float64) func(types.Bounds) float64 {
	return func(b types.Bounds) float64 {
		p := float64(k + 1)
		return (math.Pow(b[0].Upper, p) - math.Pow(b[0].Lower, p)) / (p * scale)
	}
}

// squareSum ∫ (Σxᵢ)² = Σᵢ ∫xᵢ²·Πₖ≠ᵢ wₖ + 2Σᵢ<ⱼ ∫xᵢ·∫xⱼ·Πₖ≠ᵢ,ⱼ wₖ
func squareSum(b types.Bounds) float64 {
	widths := b.Widths()
	first := make([]float64, len(b))  // ∫xᵢ dxᵢ
	second := make([]float64, len(b)) // ∫xᵢ² dxᵢ
	for i, a := range b {
		first[i] = (a.Upper*a.Upper - a.Lower*a.Lower) / 2
		second[i] = (a.Upper*a.Upper*a.Upper - a.Lower*a.Lower*a.Lower) / 3
	}
	// others 除 i、j 以外各轴宽度之积
	others := func(i, j int) float64 {
		v := 1.0
		for k, w := range widths {
			if k != i && k != j {
				v *= w
			}
		}
		return v
	}
	total := 0.0
	for i := range b {
		total += second[i] * others(i, i)
		for j := i + 1; j < len(b); j++ {
			total += 2 * first[i] * first[j] * others(i, j)
		}
	}
	return total
}
