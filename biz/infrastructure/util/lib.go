package util

import (
	"log"
	"net/http"
	"strings"

	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
)

// FailOnError 出现异常时中止
func FailOnError(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err.Error())
	}
}

// ParsePaging 解析分页参数
func ParsePaging(p *cmd.Paging) (skip, limit int64) {
	// 设置分页参数
	skip = int64((p.Page - 1) * p.Limit)
	limit = int64(p.Limit)
	return skip, limit
}

// SniffImage 判断字节流是否是支持的图片格式, 返回格式名
func SniffImage(data []byte) (string, bool) {
	switch ct := http.DetectContentType(data); ct {
	case "image/jpeg":
		return "jpeg", true
	case "image/png":
		return "png", true
	case "image/webp":
		return "webp", true
	default:
		return ct, false
	}
}

// CleanClassName 将预测类别转成可读名称
// Tomato___Late_blight -> Tomato — Late blight
func CleanClassName(class string) string {
	s := strings.ReplaceAll(class, "___", " — ")
	return strings.ReplaceAll(s, "_", " ")
}

// PlantFromClass 从预测类别推断植物名称
// Tomato___Late_blight -> Tomato
func PlantFromClass(class string) string {
	name, _, _ := strings.Cut(class, "___")
	return strings.ReplaceAll(name, "_", " ")
}
