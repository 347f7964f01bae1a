package service

// LevelInfo 亲密度等级定义
type LevelInfo struct {
	Level    int    `json:"level"`
	MinCount uint64 `json:"minCount"` // 达到该等级所需的最小带权计数
	Label    string `json:"label"`
}

// intimacyLevels 等级阶梯，按 MinCount 升序
// 亲密度只由付费方的带权消息计数决定，等级只升不降
var intimacyLevels = []LevelInfo{
	{Level: 1, MinCount: 0, Label: "初识"},
	{Level: 2, MinCount: 10, Label: "熟络"},
	{Level: 3, MinCount: 30, Label: "心动"},
	{Level: 4, MinCount: 60, Label: "暧昧"},
	{Level: 5, MinCount: 100, Label: "热恋"},
	{Level: 6, MinCount: 200, Label: "深爱"},
	{Level: 7, MinCount: 500, Label: "挚爱"},
	{Level: 8, MinCount: 1000, Label: "灵魂伴侣"},
}

// LevelFor 根据带权计数计算当前等级，纯函数无副作用
func LevelFor(paidMsgCount uint64) LevelInfo {
	current := intimacyLevels[0]
	for _, lv := range intimacyLevels {
		if paidMsgCount >= lv.MinCount {
			current = lv
		} else {
			break
		}
	}
	return current
}

// NextLevel 返回下一等级，已是满级时返回 nil
func NextLevel(level int) *LevelInfo {
	for i := range intimacyLevels {
		if intimacyLevels[i].Level == level && i+1 < len(intimacyLevels) {
			next := intimacyLevels[i+1]
			return &next
		}
	}
	return nil
}

// CheckLevelUp 判断计数从 before 增长到 after 是否跨越了等级阈值
// 返回跨越后的新等级；未跨越返回 nil
func CheckLevelUp(before, after uint64) *LevelInfo {
	prev := LevelFor(before)
	curr := LevelFor(after)
	if curr.Level > prev.Level {
		return &curr
	}
	return nil
}
