package report

// 页面几何常量, 单位毫米, A4竖版
// 调整这些值会改变既有报告的分页位置, 需要同步渲染端
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	// MarginX 左右页边距
	MarginX = 20.0

	// BodyIndent 列表项的缩进
	BodyIndent = 25.0

	// HeaderBandHeight 首页顶部色带高度
	HeaderBandHeight = 40.0

	// ContentTop 首页正文起始纵坐标
	ContentTop = 55.0

	// NewPageTop 换页后正文起始纵坐标
	NewPageTop = 20.0

	// SectionBreakY 超过该纵坐标不再放置新小节标题
	SectionBreakY = 260.0

	// LineBreakY 超过该纵坐标不再放置正文行
	LineBreakY = 270.0

	// RawBreakY 原始文本段落的换页阈值, 提前换页避免大段被腰斩
	RawBreakY = 200.0

	// LineHeight 正文行高
	LineHeight = 5.0

	// TitleAdvance 小节标题占用高度
	TitleAdvance = 8.0

	// ItemGap 列表项之间的间距
	ItemGap = 3.0

	// SectionGap 小节之间的间距
	SectionGap = 5.0

	// LabelX / ValueX 头部字段的标签列和取值列
	LabelX = 20.0
	ValueX = 70.0

	// HeaderFieldGap 头部字段行距
	HeaderFieldGap = 12.0

	// HeaderSectionGap 头部字段与第一小节的间距
	HeaderSectionGap = 18.0
)

// 字号
const (
	SizeBandTitle = 22
	SizeBandSub   = 10
	SizeField     = 14
	SizeTitle     = 13
	SizeBody      = 10
)

// Block 是页面上一段待渲染的文本及其位置
type Block struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size int     `json:"size"`
	Bold bool    `json:"bold,omitempty"`
	// Align 为center时X是中轴而非左缘
	Align string `json:"align,omitempty"`
}

// Page 是一页的全部内容块, 分页器保证不产出空页
type Page struct {
	Blocks []Block `json:"blocks"`
}
