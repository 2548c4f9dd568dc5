package emotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	analysis "github.com/zhouzirui/emotion-detector/internal/analysis/emotion"
	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	"github.com/zhouzirui/emotion-detector/pkg/metrics"
)

// ErrUnavailable is returned when the classifier failed and simulation is disabled.
var ErrUnavailable = errors.New("emotion classifier unavailable")

// Config 控制情绪检测服务的行为。
type Config struct {
	SimulationEnabled bool
}

// Service 调用分类器完成情绪检测，并在外部调用失败时回退到关键词模拟。
type Service struct {
	classifier Classifier
	simulate   func(text string) model.Result
	simulation bool
	metrics    *metrics.Metrics
	log        *logrus.Entry
}

// NewService 创建情绪检测服务。metrics 可以为 nil。
func NewService(classifier Classifier, cfg Config, m *metrics.Metrics) *Service {
	return &Service{
		classifier: classifier,
		simulate:   analysis.Simulate,
		simulation: cfg.SimulationEnabled,
		metrics:    m,
		log:        logrus.WithField("component", "emotion"),
	}
}

// SimulationEnabled reports whether classifier failures are replaced by keyword simulation.
func (s *Service) SimulationEnabled() bool {
	return s.simulation
}

// Detect 检测文本情绪。空白输入与被拒绝的输入返回全空结果；
// 传输或解析失败时返回模拟结果，关闭模拟时返回 ErrUnavailable。
func (s *Service) Detect(ctx context.Context, text string) (model.Result, error) {
	if strings.TrimSpace(text) == "" {
		s.metrics.ObserveDetection(metrics.OutcomeInvalid)
		return model.Invalid(), nil
	}

	if s.classifier == nil {
		return s.handleFailure(text, &ClassifyError{Kind: KindTransport, Err: errors.New("no classifier configured")})
	}

	start := time.Now()
	scores, err := s.classifier.Classify(ctx, text)
	s.metrics.ObserveClassify(s.classifier.Name(), time.Since(start))
	if err != nil {
		return s.handleFailure(text, err)
	}

	s.metrics.ObserveDetection(metrics.OutcomeRemote)
	return model.FromScores(scores), nil
}

func (s *Service) handleFailure(text string, err error) (model.Result, error) {
	kind := KindOf(err)
	entry := s.log.WithFields(logrus.Fields{"kind": kind.String()}).WithError(err)

	if kind == KindBadRequest {
		entry.Debug("classifier rejected input")
		s.metrics.ObserveDetection(metrics.OutcomeRejected)
		return model.Invalid(), nil
	}

	if !s.simulation {
		entry.Warn("classifier failed, simulation disabled")
		s.metrics.ObserveDetection(metrics.OutcomeUnavailable)
		return model.Invalid(), ErrUnavailable
	}

	entry.Warn("classifier failed, serving simulated result")
	s.metrics.ObserveDetection(metrics.OutcomeSimulated)
	return s.simulate(text), nil
}
