package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	emotionmodel "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

// LLMClassifier 使用大模型给出五项情绪得分，作为 Watson 之外的分类后端。
type LLMClassifier struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMClassifier 编译 prompt -> chat model 链。
func NewLLMClassifier(ctx context.Context, chatModel model.ChatModel) (*LLMClassifier, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	return &LLMClassifier{chain: runnable}, nil
}

// Name identifies the classifier in logs and metrics.
func (c *LLMClassifier) Name() string {
	return "ark"
}

// Classify 调用模型并解析其 JSON 输出。
func (c *LLMClassifier) Classify(ctx context.Context, text string) (emotionmodel.Scores, error) {
	msg, err := c.chain.Invoke(ctx, map[string]any{"text": text})
	if err != nil {
		return emotionmodel.Scores{}, transportError(fmt.Errorf("classifier invoke: %w", err))
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return emotionmodel.Scores{}, malformedError(errors.New("empty classifier output"))
	}

	return parseClassifierOutput(msg.Content)
}

type classifierPayload struct {
	Anger   *float64 `json:"anger"`
	Disgust *float64 `json:"disgust"`
	Fear    *float64 `json:"fear"`
	Joy     *float64 `json:"joy"`
	Sadness *float64 `json:"sadness"`
}

// parseClassifierOutput 从模型输出中截取 JSON 对象并校验五项得分。
func parseClassifierOutput(content string) (emotionmodel.Scores, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return emotionmodel.Scores{}, malformedError(errors.New("missing json object"))
	}

	var payload classifierPayload
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return emotionmodel.Scores{}, malformedError(err)
	}

	if payload.Anger == nil || payload.Disgust == nil || payload.Fear == nil || payload.Joy == nil || payload.Sadness == nil {
		return emotionmodel.Scores{}, malformedError(errors.New("classifier output missing scores"))
	}

	return emotionmodel.Scores{
		Anger:   clampScore(*payload.Anger),
		Disgust: clampScore(*payload.Disgust),
		Fear:    clampScore(*payload.Fear),
		Joy:     clampScore(*payload.Joy),
		Sadness: clampScore(*payload.Sadness),
	}, nil
}

func clampScore(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

const classifierSystemPrompt = "You are an emotion classifier. Score the text the user provides for five emotions: anger, disgust, fear, joy and sadness. Each score is a probability between 0 and 1.\nReturn only one JSON object whose keys are exactly anger, disgust, fear, joy and sadness with numeric values. Do not output any other text."

const classifierUserPrompt = "Text to analyze:\n{text}"
