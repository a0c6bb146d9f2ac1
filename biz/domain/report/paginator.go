package report

import (
	"fmt"

	"github.com/xh-polaris/croply-core/biz/domain/detail"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/domain/severity"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

// ReportTitle 报告抬头
const ReportTitle = "Croply AI — Plant Health Report"

// section 是固定顺序中的一个小节
type section struct {
	title string
	items [][]string
}

// layouter 维护逐页下移的纵坐标游标
type layouter struct {
	pages []Page
	cur   []Block
	y     float64
}

// Layout 将一条诊断记录排成可打印的页序列
// 输入相同则输出完全一致, 不依赖时间与随机数
func Layout(rec *history.Record) []Page {
	l := &layouter{y: ContentTop}
	l.header(rec)

	d := rec.Detail
	if d == nil {
		d = &detail.Detail{}
	}
	for _, sec := range sections(d) {
		l.section(sec)
	}

	// 无结构化内容时原始文本作为一个整段排版
	if !d.Structured() && d.RawFallback != "" {
		l.rawFallback(d.RawFallback)
	}

	l.flush()
	return l.pages
}

// header 首页色带与概要字段
func (l *layouter) header(rec *history.Record) {
	l.cur = append(l.cur,
		Block{Text: ReportTitle, X: PageWidth / 2, Y: 18, Size: SizeBandTitle, Align: "center"},
		Block{Text: rec.Timestamp, X: PageWidth / 2, Y: 30, Size: SizeBandSub, Align: "center"},
	)

	tier := severity.Classify(rec.Confidence)
	fields := []struct{ label, value string }{
		{"Plant Name:", rec.PlantName},
		{"Disease:", util.CleanClassName(rec.Class)},
		{"Confidence:", fmt.Sprintf("%.1f%%", rec.Confidence)},
		{"Severity:", tier.Meta().Label},
	}
	for _, f := range fields {
		l.cur = append(l.cur,
			Block{Text: f.label, X: LabelX, Y: l.y, Size: SizeField, Bold: true},
			Block{Text: f.value, X: ValueX, Y: l.y, Size: SizeField},
		)
		l.y += HeaderFieldGap
	}
	l.y += HeaderSectionGap - HeaderFieldGap
}

// section 放置一个小节: 标题前空间不足先换页, 正文可以跨页续排
func (l *layouter) section(sec section) {
	if len(sec.items) == 0 {
		return
	}
	if l.y > SectionBreakY {
		l.newPage()
	}
	l.cur = append(l.cur, Block{Text: sec.title, X: MarginX, Y: l.y, Size: SizeTitle, Bold: true})
	l.y += TitleAdvance

	for _, lines := range sec.items {
		if l.y > LineBreakY {
			l.newPage()
		}
		for _, line := range lines {
			l.cur = append(l.cur, Block{Text: line, X: BodyIndent, Y: l.y, Size: SizeBody})
			l.y += LineHeight
		}
		l.y += ItemGap
	}
	l.y += SectionGap
}

// rawFallback 大段自由文本, 逐行检查越界
func (l *layouter) rawFallback(text string) {
	if l.y > RawBreakY {
		l.newPage()
	}
	for _, line := range WrapText(text, PageWidth-2*MarginX, SizeBody) {
		if l.y > LineBreakY {
			l.newPage()
		}
		l.cur = append(l.cur, Block{Text: line, X: MarginX, Y: l.y, Size: SizeBody})
		l.y += LineHeight
	}
}

// newPage 结束当前页并重置游标
func (l *layouter) newPage() {
	l.flush()
	l.y = NewPageTop
}

// flush 只输出非空页
func (l *layouter) flush() {
	if len(l.cur) == 0 {
		return
	}
	l.pages = append(l.pages, Page{Blocks: l.cur})
	l.cur = nil
}

// sections 按固定顺序展开结构化小节
func sections(d *detail.Detail) []section {
	contentWidth := PageWidth - MarginX - BodyIndent
	wrap := func(text string) []string {
		return WrapText(text, contentWidth, SizeBody)
	}
	bullets := func(items []string) [][]string {
		out := make([][]string, 0, len(items))
		for _, it := range items {
			out = append(out, wrap("• "+it))
		}
		return out
	}

	var description [][]string
	if d.Description != "" {
		description = [][]string{wrap(d.Description)}
	}

	// 治疗方案每条固定两行起: 方案名与说明, 有效性单独一行
	var treatments [][]string
	for _, opt := range d.TreatmentOptions {
		item := []string{"• " + opt.Method}
		item = append(item, wrap(opt.Description)...)
		if opt.Effectiveness != "" {
			item = append(item, "Effectiveness: "+opt.Effectiveness)
		}
		treatments = append(treatments, item)
	}

	return []section{
		{title: "Description", items: description},
		{title: "Symptoms", items: bullets(d.Symptoms)},
		{title: "Causes", items: bullets(d.Causes)},
		{title: "Treatment Options", items: treatments},
		{title: "Prevention", items: bullets(d.Prevention)},
	}
}
