package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
)

type stubSearcher struct {
	results []rag.RetrievalResult
	err     error
}

func (s *stubSearcher) Search(context.Context, string, int) ([]rag.RetrievalResult, error) {
	return s.results, s.err
}

type recordingProvider struct {
	reply     string
	err       error
	chatCalls int
	lastMsgs  []llm.Message
}

func (p *recordingProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.chatCalls++
	p.lastMsgs = history
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *recordingProvider) ChatWithTools(context.Context, []llm.Message, []llm.ToolDef, ...llm.Option) (*llm.Turn, error) {
	return nil, errors.New("not used")
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *recordingProvider) Ping(context.Context) error {
	return p.err
}

func TestAskGroundedAnswer(t *testing.T) {
	searcher := &stubSearcher{results: []rag.RetrievalResult{
		{Id: "a", Name: "Dragon Roll", Price: 14.5, Similarity: 0.91, Document: "Name: Dragon Roll. Price: $14.50."},
		{Id: "b", Name: "Rainbow Roll", Price: 15.0, Similarity: 0.84, Document: "Name: Rainbow Roll. Price: $15.00."},
	}}
	provider := &recordingProvider{reply: "The Dragon Roll is $14.50."}

	a := New(searcher, provider, logger.NewNopLogger())
	result, err := a.Ask(context.Background(), "how much is the dragon roll?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if result.Text != "The Dragon Roll is $14.50." {
		t.Errorf("Text = %q", result.Text)
	}
	if len(result.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(result.Sources))
	}
	if result.Sources[0].Name != "Dragon Roll" || result.Sources[0].Similarity != 0.91 {
		t.Errorf("Sources[0] = %+v", result.Sources[0])
	}

	// Every retrieved document must appear in the prompt.
	user := provider.lastMsgs[len(provider.lastMsgs)-1].Content
	if !strings.Contains(user, "Dragon Roll") || !strings.Contains(user, "Rainbow Roll") {
		t.Errorf("prompt missing context documents: %q", user)
	}
	if !strings.Contains(user, "how much is the dragon roll?") {
		t.Errorf("prompt missing question: %q", user)
	}
}

func TestAskEmptyRetrievalSkipsModel(t *testing.T) {
	provider := &recordingProvider{reply: "should never be used"}

	a := New(&stubSearcher{}, provider, logger.NewNopLogger())
	result, err := a.Ask(context.Background(), "do you sell burgers?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if result.Text != NoInformation {
		t.Errorf("Text = %q, want fixed no-information reply", result.Text)
	}
	if len(result.Sources) != 0 {
		t.Errorf("len(Sources) = %d, want 0", len(result.Sources))
	}
	if provider.chatCalls != 0 {
		t.Errorf("chat calls = %d, want 0 when nothing retrieved", provider.chatCalls)
	}
}

func TestAskRetrievalErrorPropagates(t *testing.T) {
	wantErr := errors.New("embed failed")
	a := New(&stubSearcher{err: wantErr}, &recordingProvider{}, logger.NewNopLogger())

	_, err := a.Ask(context.Background(), "anything")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestAskProviderDown(t *testing.T) {
	searcher := &stubSearcher{results: []rag.RetrievalResult{
		{Id: "a", Name: "Dragon Roll", Price: 14.5, Document: "Name: Dragon Roll."},
	}}
	a := New(searcher, &recordingProvider{err: errors.New("connection refused")}, logger.NewNopLogger())

	_, err := a.Ask(context.Background(), "dragon roll?")
	if !errors.Is(err, rag.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}
