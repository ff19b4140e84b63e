package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestBedrockComplete(t *testing.T) {
	fake := &fakeInvoker{body: `{
		"content": [
			{"type": "text", "text": "{\"summary\":"},
			{"type": "text", "text": "\"ok\"}"}
		],
		"stop_reason": "end_turn"
	}`}
	b := NewBedrockWithClient(fake, "", zap.NewNop())

	out, err := b.Complete(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)

	require.NotNil(t, fake.input)
	assert.Equal(t, defaultBedrockModel, *fake.input.ModelId)

	var req anthropicRequest
	require.NoError(t, json.Unmarshal(fake.input.Body, &req))
	assert.Equal(t, anthropicVersion, req.AnthropicVersion)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "summarize", req.Messages[0].Content)
}

func TestBedrockCompleteErrors(t *testing.T) {
	t.Run("invoke failure", func(t *testing.T) {
		cause := errors.New("throttled")
		b := NewBedrockWithClient(&fakeInvoker{err: cause}, "", zap.NewNop())
		_, err := b.Complete(context.Background(), "x")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("empty content", func(t *testing.T) {
		b := NewBedrockWithClient(&fakeInvoker{body: `{"content": []}`}, "", zap.NewNop())
		_, err := b.Complete(context.Background(), "x")
		assert.ErrorContains(t, err, "empty response")
	})

	t.Run("non anthropic model", func(t *testing.T) {
		fake := &fakeInvoker{body: `{}`}
		b := NewBedrockWithClient(fake, "amazon.titan-text-express-v1", zap.NewNop())
		_, err := b.Complete(context.Background(), "x")
		assert.ErrorContains(t, err, "unsupported model")
		assert.Nil(t, fake.input)
	})
}
