package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"

	"github.com/xh-polaris/croply-core/biz/adaptor/router"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mq"
	"github.com/xh-polaris/croply-core/provider"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	// 消费者模式只跑归档消费
	if c.State == "consumer" {
		mq.Consume()
		return
	}

	tracer, cfg := tracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg))

	router.Register(h)
	h.Spin()
}
