package emotion

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/emotion-detector/internal/config"
)

// NewClassifier 根据配置选择分类后端。选择 ark 但缺少凭证时退回 Watson。
func NewClassifier(ctx context.Context, cfg config.DetectorConfig, aiCfg config.AIConfig) (Classifier, error) {
	if cfg.Classifier == config.ClassifierArk {
		if !aiCfg.Enabled() {
			logrus.Warn("EMOTION_CLASSIFIER=ark but Ark credentials are missing, falling back to watson")
		} else {
			chatModel, err := aiCfg.NewChatModel(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to create chat model: %w", err)
			}
			classifier, err := NewLLMClassifier(ctx, chatModel)
			if err != nil {
				return nil, err
			}
			return classifier, nil
		}
	}

	client, err := NewWatsonClient(WatsonConfig{
		URL:     cfg.URL,
		ModelID: cfg.ModelID,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
