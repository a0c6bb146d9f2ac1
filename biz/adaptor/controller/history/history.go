package history

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/xh-polaris/croply-core/biz/adaptor"
	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/provider"
)

// List .
// @router /history/list [GET]
func List(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ListHistoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.List(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Delete .
// @router /history/delete [POST]
func Delete(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.DeleteHistoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.Delete(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Rate .
// @router /history/rate [POST]
func Rate(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.RateHistoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.Rate(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Clear .
// @router /history/clear [POST]
func Clear(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.HistoryService.Clear(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// ListArchive .
// @router /history/archive [GET]
func ListArchive(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ListArchiveReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.ListArchive(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
