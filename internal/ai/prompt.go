package ai

import "strings"

// summarizeSystemPrompt fixes the persona and tone: a professional news
// caster who keeps furigana to genuinely difficult terms only.
const summarizeSystemPrompt = `あなたはプロのニュースキャスターです。情報を正確かつ簡潔に、親しみやすい言葉で伝えてください。フリガナは難しい単語のみに絞ってください。`

// summarizeInstruction is the structured request sent with every article:
// a summary of at most 3 lines, furigana only on difficult terms, and a
// glossary section that is omitted entirely when nothing qualifies.
const summarizeInstruction = `以下のニュース記事のタイトルと本文を読み、以下の要件を満たすテキストを生成してください。

【要件】
1. 記事の内容を**3行以内**で、分かりやすく**要約**してください。
2. 要約文の中で、**難しい漢字、専門用語、人名、地名**にのみ、括弧書きで**フリガナ**を付けてください。全ての漢字にフリガナを付ける必要はありません。
3. 記事本文に含まれる**難しい専門用語**や**馴染みの薄い単語**があれば、その**意味を簡潔に**一行で補足してください（補足がない場合は[単語解説]セクション自体を省略してください）。

【出力フォーマット】
[要約]
要約テキスト1行目（フリガナを適切に付与）
要約テキスト2行目
要約テキスト3行目

[単語解説]
（補足が必要な場合のみ記載）単語: 意味

---
`

// SummarizePrompt builds the system and user prompts for the article
// summarization operation.
func SummarizePrompt(title, body string) (systemPrompt string, userPrompt string) {
	systemPrompt = summarizeSystemPrompt

	var b strings.Builder
	b.WriteString(summarizeInstruction)
	b.WriteString("\n【記事タイトル】\n")
	b.WriteString(title)
	b.WriteString("\n\n【記事本文】\n")
	b.WriteString(body)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}
