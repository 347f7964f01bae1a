package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		count uint64
		level int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{29, 2},
		{30, 3},
		{99, 4},
		{100, 5},
		{1000, 8},
		{99999, 8},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, LevelFor(c.count).Level, "count=%d", c.count)
	}
}

func TestCheckLevelUp(t *testing.T) {
	// 9 -> 10 跨越二级阈值
	up := CheckLevelUp(9, 10)
	assert.NotNil(t, up)
	assert.Equal(t, 2, up.Level)
	assert.Equal(t, "熟络", up.Label)

	// 10 -> 11 同级内增长不触发
	assert.Nil(t, CheckLevelUp(10, 11))

	// 权重 2 一步跨越边界
	up = CheckLevelUp(29, 31)
	assert.NotNil(t, up)
	assert.Equal(t, 3, up.Level)

	// 满级后不再触发
	assert.Nil(t, CheckLevelUp(1000, 2000))
}

func TestNextLevel(t *testing.T) {
	next := NextLevel(1)
	assert.NotNil(t, next)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, uint64(10), next.MinCount)

	assert.Nil(t, NextLevel(8))
}
