package cmd

// AskReq 单次对话请求, session取float/main, 缺省为float
type AskReq struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Session  string `json:"session"`
}

// TranscriptReq 查询会话记录
type TranscriptReq struct {
	Session string `query:"session"`
}

// ClearChatReq 清空某个会话
type ClearChatReq struct {
	Session string `json:"session"`
}

// CareTipsReq 养护建议请求
type CareTipsReq struct {
	PlantName string `json:"plant_name"`
	Language  string `json:"language"`
}

// ReportPagesReq 报告分页请求
type ReportPagesReq struct {
	Id int64 `query:"id"`
}
