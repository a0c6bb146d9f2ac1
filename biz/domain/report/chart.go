package report

import (
	"math"
	"math/rand"

	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

// ChartEntry 置信度分布图的一项
type ChartEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ConfidenceBreakdown 构造展示用的置信度分布数据
// Healthy/Other是装饰性的合成类目, 用记录ID做种子保证同一记录每次结果一致
func ConfidenceBreakdown(rec *history.Record) []ChartEntry {
	name := util.CleanClassName(rec.Class)
	if len([]rune(name)) > 20 {
		name = string([]rune(name)[:20]) + "..."
	}

	rng := rand.New(rand.NewSource(rec.ID))
	return []ChartEntry{
		{Name: name, Value: rec.Confidence},
		{Name: "Healthy", Value: math.Max(0, 100-rec.Confidence-rng.Float64()*10)},
		{Name: "Other", Value: math.Max(0, rng.Float64()*10)},
	}
}
