package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// emptyBodyNotice replaces the summary when no body text could be
	// extracted; the provider is never called in that case.
	emptyBodyNotice = "記事本文が見つからなかったため、要約できませんでした。"

	// summarizeErrorFormat embeds the provider error so the recipient sees
	// why an article has no summary instead of the run aborting.
	summarizeErrorFormat = "要約生成中にエラーが発生しました。\nエラー内容: %v"
)

// Summarize returns displayable annotation text for one article, never an
// error: an empty body short-circuits to a fixed notice without calling the
// provider, and a provider failure degrades to a message embedding the
// error detail. ok reports whether a real summary was produced.
func Summarize(ctx context.Context, p Provider, title, body string) (text string, ok bool) {
	if strings.TrimSpace(body) == "" {
		return emptyBodyNotice, false
	}

	text, err := p.Summarize(ctx, title, body)
	if err != nil {
		slog.Warn("summarization failed", "title", title, "error", err)
		return fmt.Sprintf(summarizeErrorFormat, err), false
	}

	return strings.TrimSpace(text), true
}
