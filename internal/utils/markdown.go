package utils

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	// 动态描述的渲染策略：普通 UGC，链接强制新窗口打开
	ugcPolicy = bluemonday.UGCPolicy()
	// 入库前的清洗策略：纯文本，剥掉所有标签
	textPolicy = bluemonday.StrictPolicy()
)

func init() {
	ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	ugcPolicy.RequireNoReferrerOnLinks(true)
}

// SanitizeText 清洗用户提交的描述文本，剥离所有 HTML 标签
func SanitizeText(source string) string {
	return strings.TrimSpace(textPolicy.Sanitize(source))
}

// RenderMarkdown 将描述渲染为安全的 HTML，供客户端直接展示
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return source // Fallback
	}
	return string(ugcPolicy.SanitizeBytes(buf.Bytes()))
}
