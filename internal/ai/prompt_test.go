package ai

import (
	"strings"
	"testing"
)

func TestSummarizePrompt(t *testing.T) {
	title := "新型ロケットの打ち上げに成功"
	body := "宇宙航空研究開発機構は、新型ロケットの打ち上げに成功したと発表した。"

	t.Run("returns non-empty prompts", func(t *testing.T) {
		systemPrompt, userPrompt := SummarizePrompt(title, body)

		if systemPrompt == "" {
			t.Error("expected non-empty system prompt")
		}
		if userPrompt == "" {
			t.Error("expected non-empty user prompt")
		}
	})

	t.Run("system prompt fixes persona and furigana restraint", func(t *testing.T) {
		systemPrompt, _ := SummarizePrompt(title, body)

		if !strings.Contains(systemPrompt, "ニュースキャスター") {
			t.Error("system prompt should fix the news-caster persona")
		}
		if !strings.Contains(systemPrompt, "フリガナ") {
			t.Error("system prompt should restrict furigana to difficult terms")
		}
	})

	t.Run("user prompt contains the structured instruction", func(t *testing.T) {
		_, userPrompt := SummarizePrompt(title, body)

		if !strings.Contains(userPrompt, "3行以内") {
			t.Error("user prompt should constrain the summary to 3 lines")
		}
		if !strings.Contains(userPrompt, "フリガナ") {
			t.Error("user prompt should request furigana annotations")
		}
		if !strings.Contains(userPrompt, "[単語解説]") {
			t.Error("user prompt should describe the optional glossary section")
		}
		if !strings.Contains(userPrompt, "省略してください") {
			t.Error("user prompt should allow omitting the glossary section entirely")
		}
	})

	t.Run("user prompt contains title and body", func(t *testing.T) {
		_, userPrompt := SummarizePrompt(title, body)

		if !strings.Contains(userPrompt, title) {
			t.Errorf("user prompt should contain title %q", title)
		}
		if !strings.Contains(userPrompt, body) {
			t.Error("user prompt should contain the article body")
		}
	})
}
