// Package digest assembles per-article summary blocks into the single
// notification sent per run, and drives the pipeline that produces them.
package digest

import (
	"fmt"
	"strings"

	"github.com/maddens360/asayomi/internal/models"
)

// maxMessageChars is the ceiling for one LINE text message. The platform
// limit is 5000 characters; 4800 leaves room for the truncation marker.
const maxMessageChars = 4800

// User-facing message templates. Wording is not a hard contract; changing
// it here cannot affect control flow.
const (
	blockHeaderFormat = "📰 **記事 %d**：%s\n"
	blockLinkFormat   = "\n🔗 記事URL: %s"

	extractFailedNotice = "[エラー] 本文取得失敗。URLをご確認ください。"

	bannerFormat   = "🌞 今朝の厳選ニュース %d本 🗞️\n==================================\n\n"
	footer         = "\n\n=================================="
	blockSeparator = "\n\n----------------------------------\n\n"

	truncatedNotice = "...\n(メッセージが長すぎるため途中で省略されました)"

	// FallbackMessage is sent in place of the digest when the feed yields
	// no items at all.
	FallbackMessage = "今朝のニュースを取得できませんでした。"
)

// RenderBlock formats one article's summary block. The block always carries
// the article's title and URL, whatever happened upstream, so the recipient
// can identify and revisit the source.
func RenderBlock(index int, item models.NewsItem, annotation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, blockHeaderFormat, index, item.Title)
	b.WriteString(annotation)
	fmt.Fprintf(&b, blockLinkFormat, item.URL)
	return b.String()
}

// Assemble joins the summary blocks with the separator, wraps them with the
// banner and footer, and enforces the message ceiling. truncated reports
// whether the message was cut.
func Assemble(blocks []string) (message string, truncated bool) {
	var b strings.Builder
	fmt.Fprintf(&b, bannerFormat, len(blocks))
	b.WriteString(strings.Join(blocks, blockSeparator))
	b.WriteString(footer)
	return truncateMessage(b.String())
}

// truncateMessage cuts s at the message ceiling and appends the truncation
// marker. Counts are in characters, not bytes: the payload is Japanese text
// and LINE counts characters.
func truncateMessage(s string) (string, bool) {
	r := []rune(s)
	if len(r) <= maxMessageChars {
		return s, false
	}
	return string(r[:maxMessageChars]) + truncatedNotice, true
}
