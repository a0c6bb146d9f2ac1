package consts

// 数据库相关
const (
	Timestamp = "timestamp"
)

// Post http
const (
	Post = "POST"
)

// 对话角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// 持久化键, 三个集合各自独立, 每个键只有一个写入方
const (
	KeyFloatChat = "croply:chat:float"
	KeyMainChat  = "croply:chat:main"
	KeyHistory   = "croply:history"
)

// 保留上限, 超出时静默丢弃最旧的条目
const (
	FloatChatBound = 80
	MainChatBound  = 100
	HistoryBound   = 50
)

// 预测相关
const (
	// ValidLeafThreshold 低于该置信度认为不是清晰的叶片照片
	ValidLeafThreshold = 40.0

	// ClassSeparator 预测类别的分隔符, 如 Tomato___Late_blight
	ClassSeparator = "___"
)

// 评价
const (
	RatingUp   = "up"
	RatingDown = "down"
)

// ChatErrContent 对话失败时固定的兜底回复
const ChatErrContent = "Sorry, I couldn't process your request. Please make sure the backend is running."

// 默认值
const (
	EndCmd = -1
	Ping   = 1

	DefaultLanguage = "English"
)
