package cmd

// ListHistoryReq 查询本地诊断历史
type ListHistoryReq struct {
	// Search 对植物名和类别做大小写不敏感的包含匹配, 为空返回全部
	Search string `query:"search"`
}

// ListHistoryResp 见 dto.DiagnosisItem
type DeleteHistoryReq struct {
	Id int64 `json:"id"`
}

// RateHistoryReq 对某条诊断记录评价, rating取up/down
type RateHistoryReq struct {
	Id     int64  `json:"id"`
	Rating string `json:"rating"`
}

// ListArchiveReq 分页查询Mongo中的归档记录
type ListArchiveReq struct {
	Paging
}
