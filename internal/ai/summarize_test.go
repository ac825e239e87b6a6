package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider returns canned results and counts calls.
type fakeProvider struct {
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Summarize(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestSummarize_EmptyBodySkipsProvider(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty string", body: ""},
		{name: "whitespace only", body: "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{text: "should not be used"}

			got, ok := Summarize(context.Background(), p, "タイトル", tt.body)

			if ok {
				t.Error("ok = true, want false for empty body")
			}
			if got != emptyBodyNotice {
				t.Errorf("text = %q, want the empty-body notice", got)
			}
			if p.calls != 0 {
				t.Errorf("provider called %d times, want 0", p.calls)
			}
		})
	}
}

func TestSummarize_ProviderErrorDegrades(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}

	got, ok := Summarize(context.Background(), p, "タイトル", "本文テキスト")

	if ok {
		t.Error("ok = true, want false on provider error")
	}
	if !strings.Contains(got, "quota exceeded") {
		t.Errorf("degraded text %q should embed the error detail", got)
	}
	if !strings.Contains(got, "エラー") {
		t.Errorf("degraded text %q should be a visible error notice", got)
	}
}

func TestSummarize_Success(t *testing.T) {
	p := &fakeProvider{text: "  [要約]\n要約テキスト。\n"}

	got, ok := Summarize(context.Background(), p, "タイトル", "本文テキスト")

	if !ok {
		t.Error("ok = false, want true")
	}
	if got != "[要約]\n要約テキスト。" {
		t.Errorf("text = %q, want trimmed provider output", got)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}
