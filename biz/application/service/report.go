package service

import (
	"context"

	"github.com/google/wire"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/detail"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/domain/report"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

type IReportService interface {
	Pages(ctx context.Context, req *cmd.ReportPagesReq) (*dto.ReportPagesResp, error)
	CareTips(ctx context.Context, req *cmd.CareTipsReq) (*dto.CareTipsResp, error)
}

// ReportService 生成可打印报告与养护建议
type ReportService struct {
	Store *history.Store
	Tips  model.TipsApp
}

var ReportServiceSet = wire.NewSet(
	wire.Struct(new(ReportService), "*"),
	wire.Bind(new(IReportService), new(*ReportService)),
)

// Pages 对某条历史记录做确定性排版
// 相同记录反复调用, 页序列完全一致
func (s *ReportService) Pages(ctx context.Context, req *cmd.ReportPagesReq) (*dto.ReportPagesResp, error) {
	rec, ok := s.Store.Get(req.Id)
	if !ok {
		return nil, consts.ErrNotFound
	}
	return &dto.ReportPagesResp{
		Code:   0,
		Msg:    "success",
		Record: toItem(rec),
		Pages:  report.Layout(rec),
		Chart:  report.ConfidenceBreakdown(rec),
	}, nil
}

// CareTips 获取指定植物的养护建议
func (s *ReportService) CareTips(ctx context.Context, req *cmd.CareTipsReq) (*dto.CareTipsResp, error) {
	language := req.Language
	if language == "" {
		language = consts.DefaultLanguage
	}
	res, err := s.Tips.CareTips(ctx, req.PlantName, language)
	if err != nil {
		log.Error("care tips err:", err)
		return nil, consts.ErrCareTips
	}
	// 契约: tips优先, 其次raw_content, 最后整体序列化
	if tips, ok := res["tips"].(string); ok && tips != "" {
		return &dto.CareTipsResp{Tips: tips}, nil
	}
	return &dto.CareTipsResp{Tips: detail.DisplayText(res)}, nil
}
