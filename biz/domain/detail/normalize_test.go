package detail

import (
	"encoding/json"
	"testing"
)

func TestNormalizeStructured(t *testing.T) {
	raw := map[string]any{
		"description": "Late blight is caused by Phytophthora infestans.",
		"symptoms":    []any{"dark lesions", "white mold under leaves"},
		"treatment_options": []any{
			map[string]any{"method": "Copper fungicide", "description": "Spray weekly", "effectiveness": "High"},
		},
	}
	d := Normalize(raw)

	if d.Description != raw["description"] {
		t.Fatalf("description changed: %q", d.Description)
	}
	if len(d.Symptoms) != 2 || d.Symptoms[0] != "dark lesions" {
		t.Fatalf("symptoms wrong: %v", d.Symptoms)
	}
	if len(d.TreatmentOptions) != 1 || d.TreatmentOptions[0].Effectiveness != "High" {
		t.Fatalf("treatment options wrong: %v", d.TreatmentOptions)
	}
	// 缺失字段必须保持缺失, 不能补成空集合
	if d.Causes != nil || d.Prevention != nil {
		t.Fatalf("absent fields defaulted: causes=%v prevention=%v", d.Causes, d.Prevention)
	}
	if d.RawFallback != "" {
		t.Fatalf("raw fallback should be suppressed, got %q", d.RawFallback)
	}
}

func TestNormalizeJSONText(t *testing.T) {
	text := `{"description":"Powdery mildew on grape leaves","prevention":["prune for airflow"]}`
	d := Normalize(text)
	if d.Description == "" || len(d.Prevention) != 1 {
		t.Fatalf("structured text not parsed: %+v", d)
	}
	if d.RawFallback != "" {
		t.Fatalf("raw fallback not suppressed: %q", d.RawFallback)
	}
}

func TestNormalizeUnparseableText(t *testing.T) {
	text := "The model could not produce structured output this time."
	d := Normalize(text)
	if d.RawFallback != text {
		t.Fatalf("raw fallback = %q, want original text", d.RawFallback)
	}
	if d.Structured() {
		t.Fatalf("unexpected structured fields: %+v", d)
	}
}

func TestNormalizeLeavesInputIntact(t *testing.T) {
	in := &Detail{Description: "desc", RawFallback: "leftover raw text"}
	out := Normalize(in)

	if out == in {
		t.Fatal("normalize returned the caller's pointer")
	}
	// 结构化视图下输出抑制原始文本, 但入参保持原样
	if out.RawFallback != "" {
		t.Fatalf("output raw fallback not suppressed: %q", out.RawFallback)
	}
	if in.RawFallback != "leftover raw text" || in.Description != "desc" {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	for _, raw := range []any{nil, "", 42, []any{"x"}, map[string]any{}} {
		d := Normalize(raw)
		if d == nil {
			t.Fatalf("Normalize(%v) returned nil", raw)
		}
	}
}

func TestDisplayTextFallbackChain(t *testing.T) {
	if got := DisplayText(map[string]any{"response": "hi", "raw_content": "raw"}); got != "hi" {
		t.Fatalf("response should win, got %q", got)
	}
	if got := DisplayText(map[string]any{"raw_content": "raw"}); got != "raw" {
		t.Fatalf("raw_content should be second, got %q", got)
	}

	payload := map[string]any{"b": "2", "a": "1"}
	got := DisplayText(payload)
	var back map[string]any
	if err := json.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("last resort is not valid json: %q", got)
	}
	// 稳定序列化: 重复调用输出一致
	if got != DisplayText(payload) {
		t.Fatal("stringification not stable")
	}
}
