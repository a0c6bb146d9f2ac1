package detail

import (
	"encoding/json"
	"fmt"
)

// Normalize 将远端返回的原始诊断信息规范化
// 入参可能是结构化对象, JSON文本, 或任意降级文本; 永不返回错误,
// 最坏情况是只有RawFallback的降级结果
func Normalize(raw any) *Detail {
	switch v := raw.(type) {
	case nil:
		return &Detail{}
	case *Detail:
		if v == nil {
			return &Detail{}
		}
		// 不改动调用方持有的值
		cp := *v
		return normalized(&cp)
	case Detail:
		return normalized(&v)
	case string:
		return parseText(v)
	case []byte:
		return parseText(string(v))
	case map[string]any:
		return fromMap(v)
	default:
		// 未知形态, 尝试按结构化对象中转一次
		data, err := json.Marshal(v)
		if err != nil {
			return &Detail{RawFallback: fmt.Sprint(v)}
		}
		return parseText(string(data))
	}
}

// parseText 严格解析文本, 失败时整体落入RawFallback
func parseText(text string) *Detail {
	if text == "" {
		return &Detail{}
	}
	var d Detail
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return &Detail{RawFallback: text}
	}
	return normalized(&d)
}

// fromMap 按字段透传, 缺失字段保持缺失
func fromMap(m map[string]any) *Detail {
	d := &Detail{}
	if s, ok := m["description"].(string); ok {
		d.Description = s
	}
	d.Symptoms = stringList(m["symptoms"])
	d.Causes = stringList(m["causes"])
	d.Prevention = stringList(m["prevention"])
	if opts, ok := m["treatment_options"].([]any); ok {
		for _, o := range opts {
			om, ok := o.(map[string]any)
			if !ok {
				continue
			}
			opt := TreatmentOption{}
			opt.Method, _ = om["method"].(string)
			opt.Description, _ = om["description"].(string)
			opt.Effectiveness, _ = om["effectiveness"].(string)
			d.TreatmentOptions = append(d.TreatmentOptions, opt)
		}
	}
	if s, ok := m["raw_content"].(string); ok {
		d.RawFallback = s
	}
	return normalized(d)
}

// normalized 保证结构化视图优先于原始文本
func normalized(d *Detail) *Detail {
	if d.Structured() {
		d.RawFallback = ""
	}
	return d
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(it))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DisplayText 从对话类响应中提取展示文本
// 按固定顺序回退: response字段 -> raw_content字段 -> 整个载荷的稳定序列化,
// 保证即使远端契约漂移也总有可渲染内容
func DisplayText(payload map[string]any) string {
	if s, ok := payload["response"].(string); ok && s != "" {
		return s
	}
	if s, ok := payload["raw_content"].(string); ok && s != "" {
		return s
	}
	// json.Marshal对map按键排序, 输出稳定
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload)
	}
	return string(data)
}
