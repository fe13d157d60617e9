// Package functions 内置测试被积函数及其解析积分值。
package functions

import (
	"fmt"
	"quadrature/types"
	"slices"
	"sort"
)

// Function 已注册的测试函数
type Function struct {
	Name        string                       // 名称
	Description string                       // 表达式说明
	Dim         int                          // 固定维数，0 表示任意维
	Integrand   types.Integrand              // 被积函数
	Exact       func(b types.Bounds) float64 // 解析积分值，nil 表示无解析值
}

// Check 校验积分区域维数
func (fn Function) Check(b types.Bounds) error {
	if fn.Dim != 0 && b.Dim() != fn.Dim {
		return fmt.Errorf("函数 '%s' 需要 %d 维，得到 %d 维: %w", fn.Name, fn.Dim, b.Dim(), types.ErrInvalidBounds)
	}
	return b.Validate()
}

// Reference 返回解析积分值
func (fn Function) Reference(b types.Bounds) (float64, bool) {
	if fn.Exact == nil || fn.Check(b) != nil {
		return 0, false
	}
	return fn.Exact(b), true
}

// registry 函数映射
var registry = map[string]Function{}

// Register 注册测试函数，名称重复视为编程错误
func Register(fn Function) {
	if _, ok := registry[fn.Name]; ok {
		panic(fmt.Errorf("指定函数已经注册: %s", fn.Name))
	}
	if fn.Integrand == nil {
		panic(fmt.Errorf("函数 '%s' 的被积函数为空", fn.Name))
	}
	registry[fn.Name] = fn
}

// Get 通过名称获取函数
func Get(name string) (Function, error) {
	fn, ok := registry[name]
	if !ok {
		return Function{}, fmt.Errorf("未知函数 '%s': %w", name, types.ErrInvalidParameter)
	}
	return fn, nil
}

// Names 返回所有已注册函数名称（升序）
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List 返回所有已注册函数（按名称升序）
func List() []Function {
	list := make([]Function, 0, len(registry))
	for _, name := range Names() {
		list = append(list, registry[name])
	}
	return slices.Clip(list)
}
