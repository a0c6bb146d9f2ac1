package report

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/xh-polaris/croply-core/biz/adaptor"
	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/provider"
)

// Pages 获取某条诊断记录的报告排版
// @router /report/pages [GET]
func Pages(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ReportPagesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ReportService.Pages(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CareTips .
// @router /care-tips [POST]
func CareTips(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.CareTipsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ReportService.CareTips(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
