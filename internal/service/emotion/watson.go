package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

const (
	modelIDHeader   = "grpc-metadata-mm-model-id"
	maxResponseSize = 1 << 20
)

// WatsonConfig 配置 Watson NLP EmotionPredict 调用。
type WatsonConfig struct {
	URL     string
	ModelID string
	Timeout time.Duration
}

// WatsonClient implements Classifier against the Watson NLP EmotionPredict endpoint.
type WatsonClient struct {
	httpClient *http.Client
	url        string
	modelID    string
}

// NewWatsonClient 创建 Watson 分类客户端。
func NewWatsonClient(cfg WatsonConfig) (*WatsonClient, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("emotion api url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WatsonClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		modelID:    strings.TrimSpace(cfg.ModelID),
	}, nil
}

// Name identifies the classifier in logs and metrics.
func (c *WatsonClient) Name() string {
	return "watson"
}

type watsonRequest struct {
	RawDocument struct {
		Text string `json:"text"`
	} `json:"raw_document"`
}

type watsonResponse struct {
	EmotionPredictions []struct {
		Emotion struct {
			Anger   *float64 `json:"anger"`
			Disgust *float64 `json:"disgust"`
			Fear    *float64 `json:"fear"`
			Joy     *float64 `json:"joy"`
			Sadness *float64 `json:"sadness"`
		} `json:"emotion"`
	} `json:"emotionPredictions"`
}

// Classify 发送一次 EmotionPredict 请求。
func (c *WatsonClient) Classify(ctx context.Context, text string) (model.Scores, error) {
	var payload watsonRequest
	payload.RawDocument.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return model.Scores{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return model.Scores{}, transportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if c.modelID != "" {
		req.Header.Set(modelIDHeader, c.modelID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Scores{}, transportError(fmt.Errorf("emotion request: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return model.Scores{}, transportError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode == http.StatusBadRequest {
		return model.Scores{}, &ClassifyError{
			Kind: KindBadRequest,
			Err:  fmt.Errorf("emotion status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
		}
	}

	// 与非 400 状态码无关，只要响应体结构完整即可使用。
	return parseWatsonResponse(data)
}

func parseWatsonResponse(data []byte) (model.Scores, error) {
	var decoded watsonResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return model.Scores{}, malformedError(fmt.Errorf("decode response: %w", err))
	}
	if len(decoded.EmotionPredictions) == 0 {
		return model.Scores{}, malformedError(errors.New("missing emotionPredictions"))
	}

	emotion := decoded.EmotionPredictions[0].Emotion
	fields := []struct {
		label model.Label
		value *float64
	}{
		{model.Anger, emotion.Anger},
		{model.Disgust, emotion.Disgust},
		{model.Fear, emotion.Fear},
		{model.Joy, emotion.Joy},
		{model.Sadness, emotion.Sadness},
	}
	for _, f := range fields {
		if f.value == nil {
			return model.Scores{}, malformedError(fmt.Errorf("missing %s score", f.label))
		}
	}

	return model.Scores{
		Anger:   *emotion.Anger,
		Disgust: *emotion.Disgust,
		Fear:    *emotion.Fear,
		Joy:     *emotion.Joy,
		Sadness: *emotion.Sadness,
	}, nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
