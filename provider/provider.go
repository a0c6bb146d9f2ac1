package provider

import (
	"github.com/google/wire"

	"github.com/xh-polaris/croply-core/biz/application/service"
	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/domain/chat"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/domain/model/groq"
	"github.com/xh-polaris/croply-core/biz/domain/model/vision"
	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mapper/diagnosis"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mq"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config           *config.Config
	ChatService      *service.ChatService
	DiagnosisService *service.DiagnosisService
	HistoryService   *service.HistoryService
	ReportService    *service.ReportService
}

func Get() *Provider {
	return provider
}

// NewProvider 按依赖顺序装配各个服务
// 三个持久化键各自只有一个写入方, 装配时也只创建一份对应实例
func NewProvider() (*Provider, error) {
	c, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	kv := domain.GetRedisHelper()
	chatApp := groq.GetGroqChatApp()

	floatSession := chat.NewSession(consts.KeyFloatChat, consts.FloatChatBound, chatApp, kv)
	mainSession := chat.NewSession(consts.KeyMainChat, consts.MainChatBound, chatApp, kv)
	store := history.NewStore(consts.KeyHistory, consts.HistoryBound, kv)

	return &Provider{
		Config: c,
		ChatService: &service.ChatService{
			Float: floatSession,
			Main:  mainSession,
		},
		DiagnosisService: &service.DiagnosisService{
			PredictApp: vision.GetVisionApp(),
			InfoApp:    groq.GetGroqInfoApp(),
			History:    store,
			Producer:   mq.GetArchiveProducer(),
		},
		HistoryService: &service.HistoryService{
			Store:         store,
			ArchiveMapper: diagnosis.GetMongoMapper(),
		},
		ReportService: &service.ReportService{
			Store: store,
			Tips:  groq.GetGroqTipsApp(),
		},
	}, nil
}

var RpcSet = wire.NewSet()

var ApplicationSet = wire.NewSet(
	service.ChatServiceSet,
	service.DiagnosisServiceSet,
	service.HistoryServiceSet,
	service.ReportServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	diagnosis.NewMongoMapper,
	RpcSet,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
