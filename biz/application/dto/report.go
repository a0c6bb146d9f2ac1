package dto

import "github.com/xh-polaris/croply-core/biz/domain/report"

type (
	// TurnItem 会话消息的外部形态
	TurnItem struct {
		Role    string `json:"role"`
		Content string `json:"content"`
		Time    int64  `json:"time"`
		IsError bool   `json:"error,omitempty"`
	}

	// TranscriptResp 会话记录
	TranscriptResp struct {
		Code  int         `json:"code"`
		Msg   string      `json:"msg"`
		Turns []*TurnItem `json:"turns"`
	}

	// ReportPagesResp 可打印报告的页序列
	ReportPagesResp struct {
		Code   int                 `json:"code"`
		Msg    string              `json:"msg"`
		Record *DiagnosisItem      `json:"record"`
		Pages  []report.Page       `json:"pages"`
		Chart  []report.ChartEntry `json:"chart"`
	}
)
