package adaptive

import (
	"encoding/binary"
	"math"
	"quadrature/types"
)

// nodeCache 单次自适应调用内的函数值缓存
// 键为节点在最细格点上的量化坐标，避免浮点坐标直接作键
type nodeCache struct {
	lower  []float64
	scale  []float64 // 每轴 格点数/宽度
	values map[string]float64
	key    []byte
}

// newNodeCache 创建缓存，lattice 为每轴格点间隔数
func newNodeCache(bounds types.Bounds, lattice int64) *nodeCache {
	c := &nodeCache{
		lower:  make([]float64, len(bounds)),
		scale:  make([]float64, len(bounds)),
		values: make(map[string]float64),
		key:    make([]byte, 8*len(bounds)),
	}
	for i, a := range bounds {
		c.lower[i] = a.Lower
		c.scale[i] = float64(lattice) / a.Width()
	}
	return c
}

// quantize 计算点的量化坐标键（复用内部缓冲）
func (c *nodeCache) quantize(point []float64) []byte {
	for i, x := range point {
		q := int64(math.Round((x - c.lower[i]) * c.scale[i]))
		binary.BigEndian.PutUint64(c.key[8*i:], uint64(q))
	}
	return c.key
}

// get 读取缓存值
func (c *nodeCache) get(point []float64) (float64, bool) {
	v, ok := c.values[string(c.quantize(point))]
	return v, ok
}

// put 写入缓存值
func (c *nodeCache) put(point []float64, value float64) {
	c.values[string(c.quantize(point))] = value
}

// Len 已缓存节点数
func (c *nodeCache) Len() int { return len(c.values) }
