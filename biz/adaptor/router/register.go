package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/xh-polaris/croply-core/biz/adaptor/controller/chat"
	"github.com/xh-polaris/croply-core/biz/adaptor/controller/diagnosis"
	"github.com/xh-polaris/croply-core/biz/adaptor/controller/history"
	"github.com/xh-polaris/croply-core/biz/adaptor/controller/report"
)

func Register(r *server.Hertz) {
	root := r.Group("/", _rootMw()...)
	root.POST("/predict", diagnosis.Predict)
	root.POST("/care-tips", report.CareTips)
	{
		_chat := root.Group("/chat")
		_chat.GET("/", append(_longchatMw(), chat.LongChat)...)
		_chat.POST("/ask", chat.Ask)
		_chat.GET("/transcript", chat.Transcript)
		_chat.POST("/clear", chat.Clear)
	}
	{
		_history := root.Group("/history")
		_history.GET("/list", history.List)
		_history.POST("/delete", history.Delete)
		_history.POST("/rate", history.Rate)
		_history.POST("/clear", history.Clear)
		_history.GET("/archive", history.ListArchive)
	}
	{
		_report := root.Group("/report")
		_report.GET("/pages", report.Pages)
	}
}
