package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const systemPrompt = `あなたはIPO企業の事業概要をまとめる専門家です。` +
	`提供された会社概要テキストを日本語で4〜8項目の箇条書きにまとめてください。` +
	`各項目は「・」で始め、1行で完結させてください。` +
	`テキストが不十分な場合は入手できた情報の範囲でまとめてください。`

// maxSourceChars bounds the prospectus text sent to the backend.
const maxSourceChars = 8000

const defaultCompleteTimeout = 60 * time.Second

// Client is a text-generation backend: system instruction and user
// content in, free-form completion out.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// BulletSummarizer turns prospectus text into bullet points through a
// Client. A nil client is valid and yields a deterministic placeholder
// bullet, so the service runs without any backend configured.
type BulletSummarizer struct {
	client  Client
	timeout time.Duration
}

func NewBulletSummarizer(client Client, timeout time.Duration) *BulletSummarizer {
	if timeout <= 0 {
		timeout = defaultCompleteTimeout
	}
	return &BulletSummarizer{client: client, timeout: timeout}
}

// Summarize never fails; backend errors and missing configuration both
// degrade to a single explanatory bullet.
func (s *BulletSummarizer) Summarize(ctx context.Context, code, text string) []string {
	if s.client == nil {
		return []string{fmt.Sprintf(
			"銘柄コード %s の要約を生成するには生成AIの設定が必要です。"+
				"（AZURE_OPENAI_ENDPOINT / AZURE_OPENAI_API_KEY または ANTHROPIC_API_KEY を設定してください）",
			code,
		)}
	}

	user := strings.TrimSpace(text)
	if user == "" {
		user = fmt.Sprintf(
			"銘柄コード %s の会社概要テキストを取得できませんでした。入手可能な情報の範囲で概要をまとめてください。",
			code,
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.client.Complete(ctx, systemPrompt, truncateRunes(user, maxSourceChars))
	if err != nil {
		slog.Error("summary generation failed", "code", code, "backend", s.client.Name(), "error", err)
		return []string{fmt.Sprintf(
			"銘柄コード %s の要約を生成できませんでした。しばらくしてから再度お試しください。",
			code,
		)}
	}

	bullets := extractBullets(content)
	if len(bullets) == 0 {
		return []string{fmt.Sprintf(
			"銘柄コード %s の要約を生成できませんでした。しばらくしてから再度お試しください。",
			code,
		)}
	}
	return bullets
}

var bulletGlyphs = [...]string{"・", "•", "-"}

// extractBullets keeps only bullet lines from the completion, stripped
// of their glyph. When the backend ignored the formatting instructions,
// the whole completion becomes the single bullet.
func extractBullets(content string) []string {
	var bullets []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		for _, glyph := range bulletGlyphs {
			if strings.HasPrefix(line, glyph) {
				if b := strings.TrimSpace(strings.TrimPrefix(line, glyph)); b != "" {
					bullets = append(bullets, b)
				}
				break
			}
		}
	}

	if len(bullets) == 0 {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}
	return bullets
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
