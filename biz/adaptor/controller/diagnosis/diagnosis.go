package diagnosis

import (
	"context"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/xh-polaris/croply-core/biz/adaptor"
	"github.com/xh-polaris/croply-core/provider"
)

// Predict 识别叶片图像并生成诊断记录
// @router /predict [POST]
func Predict(ctx context.Context, c *app.RequestContext) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	defer func() { _ = f.Close() }()
	image, err := io.ReadAll(f)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	plantName := c.PostForm("plant_name")
	language := c.PostForm("language")

	p := provider.Get()
	resp, err := p.DiagnosisService.Predict(ctx, fh.Filename, image, plantName, language)
	adaptor.PostProcess(ctx, c, fh.Filename, resp, err)
}
