package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	content string
	err     error
	seen    []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.seen = in
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.content}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return f, nil
}

func TestLLMScorerParsesModelOutput(t *testing.T) {
	fake := &fakeChatModel{content: "```json\n{\"score\": 1.4, \"feedback\": \"excellent\"}\n```"}
	s := NewLLMScorerWithModel(fake, 0)

	res, err := s.Score(context.Background(), Request{
		Instructions: "judge relevance",
		Content:      "artifact body",
		Prior:        map[string]string{"relevance": "on topic"},
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	// Out-of-range model scores are clamped.
	if res.Score != 1.0 || res.Feedback != "excellent" {
		t.Fatalf("got %+v", res)
	}

	if len(fake.seen) != 2 || fake.seen[0].Role != schema.System {
		t.Fatalf("prompt shape wrong: %+v", fake.seen)
	}
	user := fake.seen[1].Content
	for _, want := range []string{"judge relevance", "artifact body", "relevance: on topic"} {
		if !strings.Contains(user, want) {
			t.Fatalf("user message missing %q:\n%s", want, user)
		}
	}
}

func TestLLMScorerSurfacesErrors(t *testing.T) {
	s := NewLLMScorerWithModel(&fakeChatModel{err: errors.New("rate limited")}, 0)
	if _, err := s.Score(context.Background(), Request{}); err == nil {
		t.Fatal("expected generate error")
	}

	s = NewLLMScorerWithModel(&fakeChatModel{content: "I cannot judge this."}, 0)
	if _, err := s.Score(context.Background(), Request{}); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("got %v, want ErrMalformedResponse", err)
	}
}
