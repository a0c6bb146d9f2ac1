package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/xh-polaris/croply-core/biz/domain/detail"
	"github.com/xh-polaris/croply-core/biz/domain/history"
)

func tomatoRecord() *history.Record {
	return &history.Record{
		ID:         1718000000000,
		PlantName:  "Tomato",
		Class:      "Tomato___Late_blight",
		Confidence: 92,
		Timestamp:  "2026-08-01T09:30:00Z",
		Detail: &detail.Detail{
			Description: "Late blight is a destructive disease of tomato caused by the oomycete Phytophthora infestans.",
			Symptoms:    []string{"spot A", "spot B"},
		},
	}
}

func pageText(p Page) string {
	var sb strings.Builder
	for _, b := range p.Blocks {
		sb.WriteString(b.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestLayoutFirstPage(t *testing.T) {
	pages := Layout(tomatoRecord())
	if len(pages) == 0 {
		t.Fatal("no pages")
	}
	first := pageText(pages[0])

	// 头部字段 + 描述 + 症状都应落在首页
	for _, want := range []string{
		ReportTitle,
		"Plant Name:", "Tomato",
		"Disease:", "Tomato — Late blight",
		"Confidence:", "92.0%",
		"Severity:", "severe",
		"Description",
		"Symptoms", "• spot A", "• spot B",
	} {
		if !strings.Contains(first, want) {
			t.Fatalf("first page missing %q:\n%s", want, first)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	rec := tomatoRecord()
	a, _ := json.Marshal(Layout(rec))
	b, _ := json.Marshal(Layout(rec))
	if string(a) != string(b) {
		t.Fatal("layout differs across identical calls")
	}
}

func TestLayoutSectionOrder(t *testing.T) {
	rec := tomatoRecord()
	rec.Detail = &detail.Detail{
		Description: "desc",
		Symptoms:    []string{"s"},
		Causes:      []string{"c"},
		TreatmentOptions: []detail.TreatmentOption{
			{Method: "Copper fungicide", Description: "Spray weekly", Effectiveness: "High"},
		},
		Prevention: []string{"p"},
	}
	all := ""
	for _, p := range Layout(rec) {
		all += pageText(p)
	}
	order := []string{"Description", "Symptoms", "Causes", "Treatment Options", "Prevention"}
	last := -1
	for _, title := range order {
		idx := strings.Index(all, title)
		if idx < 0 {
			t.Fatalf("section %q missing", title)
		}
		if idx < last {
			t.Fatalf("section %q out of order", title)
		}
		last = idx
	}
	// 治疗方案: 方案名 + 说明 + 有效性标记
	for _, want := range []string{"• Copper fungicide", "Spray weekly", "Effectiveness: High"} {
		if !strings.Contains(all, want) {
			t.Fatalf("treatment block missing %q", want)
		}
	}
}

func TestLayoutOverflowPaginates(t *testing.T) {
	rec := tomatoRecord()
	symptoms := make([]string, 120)
	for i := range symptoms {
		symptoms[i] = fmt.Sprintf("lesion pattern number %d spreading across the lower canopy", i)
	}
	rec.Detail = &detail.Detail{Symptoms: symptoms}

	pages := Layout(rec)
	if len(pages) < 2 {
		t.Fatalf("expected overflow to span pages, got %d", len(pages))
	}
	for i, p := range pages {
		if len(p.Blocks) == 0 {
			t.Fatalf("page %d is empty", i)
		}
		for _, b := range p.Blocks {
			if b.Y > PageHeight {
				t.Fatalf("page %d block below page bottom: %+v", i, b)
			}
		}
	}
}

func TestLayoutRawFallback(t *testing.T) {
	rec := tomatoRecord()
	rec.Detail = &detail.Detail{RawFallback: "The model replied in prose instead of JSON this time."}

	all := ""
	for _, p := range Layout(rec) {
		all += pageText(p)
	}
	if !strings.Contains(all, "in prose instead of JSON") {
		t.Fatal("raw fallback not rendered")
	}
	// 存在结构化小节时不渲染原始文本
	rec.Detail = &detail.Detail{Description: "structured", RawFallback: "should not appear"}
	all = ""
	for _, p := range Layout(rec) {
		all += pageText(p)
	}
	if strings.Contains(all, "should not appear") {
		t.Fatal("raw fallback rendered despite structured sections")
	}
}

func TestLayoutNoDetail(t *testing.T) {
	rec := tomatoRecord()
	rec.Detail = nil
	pages := Layout(rec)
	// 只有头部也必须是一个非空页
	if len(pages) != 1 || len(pages[0].Blocks) == 0 {
		t.Fatalf("unexpected pages: %d", len(pages))
	}
}

func TestConfidenceBreakdownDeterministic(t *testing.T) {
	rec := tomatoRecord()
	a := ConfidenceBreakdown(rec)
	b := ConfidenceBreakdown(rec)
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("want 3 entries, got %d/%d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].Value != rec.Confidence {
		t.Fatalf("primary entry value = %v", a[0].Value)
	}
	for _, e := range a[1:] {
		if e.Value < 0 {
			t.Fatalf("negative synthetic value: %+v", e)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("alpha beta gamma", 1000, SizeBody)
	if len(lines) != 1 || lines[0] != "alpha beta gamma" {
		t.Fatalf("wide wrap wrong: %v", lines)
	}
	lines = WrapText("alpha beta gamma", 20, SizeBody)
	if len(lines) < 2 {
		t.Fatalf("narrow wrap did not break: %v", lines)
	}
	if got := WrapText("", 100, SizeBody); got != nil {
		t.Fatalf("empty text produced lines: %v", got)
	}
}
