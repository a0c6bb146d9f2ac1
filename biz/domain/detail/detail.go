package detail

// Detail 是规范化后的诊断信息
// 所有字段均可缺省, nil表示"该部分不适用", 而不是空集合
type Detail struct {
	Description      string            `json:"description,omitempty" bson:"description,omitempty"`
	Symptoms         []string          `json:"symptoms,omitempty" bson:"symptoms,omitempty"`
	Causes           []string          `json:"causes,omitempty" bson:"causes,omitempty"`
	TreatmentOptions []TreatmentOption `json:"treatment_options,omitempty" bson:"treatment_options,omitempty"`
	Prevention       []string          `json:"prevention,omitempty" bson:"prevention,omitempty"`

	// RawFallback 仅在结构化解析完全失败时保留原始文本
	RawFallback string `json:"raw_content,omitempty" bson:"raw_content,omitempty"`
}

// TreatmentOption 是一条治疗方案
type TreatmentOption struct {
	Method        string `json:"method" bson:"method"`
	Description   string `json:"description" bson:"description"`
	Effectiveness string `json:"effectiveness,omitempty" bson:"effectiveness,omitempty"`
}

// Structured 返回是否存在任一结构化部分
func (d *Detail) Structured() bool {
	if d == nil {
		return false
	}
	return d.Description != "" || len(d.Symptoms) > 0 || len(d.Causes) > 0 ||
		len(d.TreatmentOptions) > 0 || len(d.Prevention) > 0
}
