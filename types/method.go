package types

import (
	"fmt"
	"strings"
)

// Method 积分方法类型
type Method uint8

// 积分方法常量定义
const (
	MethodUnknown          Method = iota // 未知方法
	MethodMidpoint                       // 复合中点法
	MethodSimpson                        // 复合辛普森法
	MethodMonteCarlo                     // 蒙特卡洛法
	MethodAdaptiveMidpoint               // 自适应复合中点法
	MethodAdaptiveSimpson                // 自适应复合辛普森法
)

// methodString 方法映射
var methodString = map[Method]struct {
	Name     string
	Adaptive bool
}{
	MethodUnknown:          {Name: "unknown"},
	MethodMidpoint:         {Name: "midpoint"},
	MethodSimpson:          {Name: "simpson"},
	MethodMonteCarlo:       {Name: "monte-carlo"},
	MethodAdaptiveMidpoint: {Name: "adaptive-midpoint", Adaptive: true},
	MethodAdaptiveSimpson:  {Name: "adaptive-simpson", Adaptive: true},
}

var mapMethodName = map[string]Method{}

func init() {
	for m, v := range methodString {
		mapMethodName[v.Name] = m
	}
}

// String 返回方法名称
func (m Method) String() string {
	if v, ok := methodString[m]; ok {
		return v.Name
	}
	return "unknown"
}

// IsAdaptive 是否为自适应方法（参数为目标相对误差）
func (m Method) IsAdaptive() bool {
	return methodString[m].Adaptive
}

// ParseMethod 通过名称获取方法
func ParseMethod(name string) (Method, error) {
	if m, ok := mapMethodName[strings.ToLower(strings.TrimSpace(name))]; ok && m != MethodUnknown {
		return m, nil
	}
	return MethodUnknown, fmt.Errorf("未知积分方法 '%s': %w", name, ErrInvalidParameter)
}

// Methods 返回所有已知方法
func Methods() []Method {
	return []Method{MethodMidpoint, MethodSimpson, MethodMonteCarlo, MethodAdaptiveMidpoint, MethodAdaptiveSimpson}
}
