package dto

import "github.com/xh-polaris/croply-core/biz/domain/detail"

type (
	// Prediction 叶片识别结果
	Prediction struct {
		Class      string  `json:"class"`
		Confidence float64 `json:"confidence"`
	}

	// PredictResp 诊断响应
	// IsValidLeaf为false时不建立记录, Message说明原因
	PredictResp struct {
		Filename    string         `json:"filename"`
		ImageType   string         `json:"image_type"`
		IsValidLeaf bool           `json:"is_valid_leaf"`
		Message     string         `json:"message,omitempty"`
		Prediction  Prediction     `json:"prediction"`
		Disease     *detail.Detail `json:"disease_information"`
		Record      *DiagnosisItem `json:"record,omitempty"`
	}

	// DiagnosisItem 一条诊断记录的外部形态
	DiagnosisItem struct {
		ID         int64          `json:"id"`
		PlantName  string         `json:"plant_name"`
		Class      string         `json:"disease"`
		Confidence float64        `json:"confidence"`
		Severity   string         `json:"severity"`
		Detail     *detail.Detail `json:"disease_info,omitempty"`
		Image      string         `json:"image,omitempty"`
		Timestamp  string         `json:"timestamp"`
		Rating     string         `json:"rating,omitempty"`
		Language   string         `json:"language,omitempty"`
	}

	// ListHistoryResp 本地诊断历史
	ListHistoryResp struct {
		Code    int              `json:"code"`
		Msg     string           `json:"msg"`
		History []*DiagnosisItem `json:"history"`
	}

	// ListArchiveResp 归档历史
	ListArchiveResp struct {
		Code    int              `json:"code"`
		Msg     string           `json:"msg"`
		History []*DiagnosisItem `json:"history"`
		Total   int64            `json:"total"`
	}
)
