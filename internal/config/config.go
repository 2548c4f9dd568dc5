package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Classifier backends.
const (
	ClassifierWatson = "watson"
	ClassifierArk    = "ark"
)

const (
	defaultEmotionURL     = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	defaultEmotionModelID = "emotion_aggregated-workflow_lang_en_stock"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Detector DetectorConfig
	AI       AIConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	detector, err := loadDetectorConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Detector: detector, AI: ai}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr     string
	Debug    bool
	LogLevel string
}

// loadServerConfig 解析服务器监听地址与调试模式。
func loadServerConfig() (ServerConfig, error) {
	debug, err := parseBoolEnv("EMOTION_DEBUG", true)
	if err != nil {
		return ServerConfig{}, err
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logLevel = getEnvOrDefault("LOG_LEVEL", logLevel)

	host := getEnvOrDefault("HOST", "0.0.0.0")
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		return ServerConfig{Addr: port, Debug: debug, LogLevel: logLevel}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: host + ":" + port, Debug: debug, LogLevel: logLevel}, nil
}

// DetectorConfig 描述情绪分类调用的配置。
type DetectorConfig struct {
	Classifier        string
	URL               string
	ModelID           string
	Timeout           time.Duration
	SimulationEnabled bool
}

func loadDetectorConfig() (DetectorConfig, error) {
	classifier := strings.ToLower(getEnvOrDefault("EMOTION_CLASSIFIER", ClassifierWatson))
	if classifier != ClassifierWatson && classifier != ClassifierArk {
		return DetectorConfig{}, fmt.Errorf("invalid EMOTION_CLASSIFIER value %q: expected %s or %s", classifier, ClassifierWatson, ClassifierArk)
	}

	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("EMOTION_TIMEOUT_SECONDS"); err != nil {
		return DetectorConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return DetectorConfig{}, fmt.Errorf("invalid EMOTION_TIMEOUT_SECONDS value %d: must be positive", *override)
		}
		timeoutSeconds = *override
	}

	simulation, err := parseBoolEnv("EMOTION_SIMULATION_ENABLED", true)
	if err != nil {
		return DetectorConfig{}, err
	}

	return DetectorConfig{
		Classifier:        classifier,
		URL:               getEnvOrDefault("EMOTION_API_URL", defaultEmotionURL),
		ModelID:           getEnvOrDefault("EMOTION_MODEL_ID", defaultEmotionModelID),
		Timeout:           time.Duration(timeoutSeconds) * time.Second,
		SimulationEnabled: simulation,
	}, nil
}

// AIConfig 描述大模型分类器相关配置。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
