package chat

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/adaptor"
	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/provider"
)

// LongChat 开启一轮长对话
// @router /chat/ [GET]
func LongChat(ctx context.Context, c *app.RequestContext) {
	// 尝试升级协议, 并处理
	err := adaptor.UpgradeWs(ctx, c, provider.Get().ChatService.ChatHandler)
	if err != nil {
		log.Error(err.Error())
	}
}

// Ask 单次对话
// @router /chat/ask [POST]
func Ask(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.AskReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ChatService.Ask(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Transcript .
// @router /chat/transcript [GET]
func Transcript(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.TranscriptReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ChatService.Transcript(ctx, req.Session)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Clear 清空会话
// @router /chat/clear [POST]
func Clear(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ClearChatReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ChatService.Clear(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
