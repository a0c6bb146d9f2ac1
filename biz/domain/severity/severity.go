package severity

// Tier 是由置信度推导的三级严重程度, 只推导不落库
type Tier int

const (
	Mild Tier = iota
	Moderate
	Severe
)

// 分级阈值, 边界值归入更高一级
const (
	SevereThreshold   = 85.0
	ModerateThreshold = 60.0
)

// Meta 是展示层需要的固定映射, 不含业务逻辑
type Meta struct {
	Label    string
	Weight   int
	Priority string
}

var metas = map[Tier]Meta{
	Mild:     {Label: "mild", Weight: 0, Priority: "low"},
	Moderate: {Label: "moderate", Weight: 1, Priority: "medium"},
	Severe:   {Label: "severe", Weight: 2, Priority: "high"},
}

// Classify 将置信度百分比映射到严重程度
func Classify(confidence float64) Tier {
	switch {
	case confidence >= SevereThreshold:
		return Severe
	case confidence >= ModerateThreshold:
		return Moderate
	default:
		return Mild
	}
}

// Meta 返回该级别的固定展示信息
func (t Tier) Meta() Meta {
	return metas[t]
}

func (t Tier) String() string {
	return metas[t].Label
}
