package dto

type (
	// ChatStartReq 开始长对话请求
	ChatStartReq struct {
		// 开始的时间戳
		Timestamp int64 `json:"timestamp"`
		// 使用者标记
		From string `json:"from"`
		// 期望的回复语言
		Language string `json:"language"`
	}

	// ChatReq 对话请求
	ChatReq struct {
		// 命令, 0对话, -1结束, 1心跳
		Cmd int64  `json:"cmd"`
		Msg string `json:"msg"`
	}

	// ChatEndResp 对话结束响应
	ChatEndResp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}

	// ChatData 一次助手回复
	ChatData struct {
		Content   string `json:"content"`
		IsError   bool   `json:"is_error,omitempty"`
		Timestamp int64  `json:"timestamp"`
	}

	// ChatContext 发给远端模型的上下文条目, 只含角色和内容
	ChatContext struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// AskResp 单次对话响应
	AskResp struct {
		Response string `json:"response"`
		IsError  bool   `json:"is_error,omitempty"`
	}

	// CareTipsResp 养护建议响应
	CareTipsResp struct {
		Tips string `json:"tips"`
	}
)
