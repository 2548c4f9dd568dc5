package emotion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Label 表示分类服务支持的五种情绪之一。
type Label string

const (
	Anger   Label = "anger"
	Disgust Label = "disgust"
	Fear    Label = "fear"
	Joy     Label = "joy"
	Sadness Label = "sadness"
)

// Labels 按固定顺序列出全部情绪，主导情绪并列时取该顺序中的第一个。
var Labels = []Label{Anger, Disgust, Fear, Joy, Sadness}

// InvalidTextMessage is returned by the façade when no dominant emotion exists.
const InvalidTextMessage = "Invalid text! Please try again!"

// Scores 是分类器返回的五项情绪得分。
type Scores struct {
	Anger   float64 `json:"anger"`
	Disgust float64 `json:"disgust"`
	Fear    float64 `json:"fear"`
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
}

// Get returns the score for label.
func (s Scores) Get(label Label) float64 {
	switch label {
	case Anger:
		return s.Anger
	case Disgust:
		return s.Disgust
	case Fear:
		return s.Fear
	case Joy:
		return s.Joy
	case Sadness:
		return s.Sadness
	default:
		return 0
	}
}

// Dominant 线性扫描 Labels，严格大于才替换，因此并列时第一个最大值胜出。
func (s Scores) Dominant() Label {
	best := Labels[0]
	bestScore := s.Get(best)
	for _, label := range Labels[1:] {
		if score := s.Get(label); score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best
}

// Result 是一次情绪检测的输出。字段为 nil 表示输入无效。
type Result struct {
	Anger           *float64 `json:"anger"`
	Disgust         *float64 `json:"disgust"`
	Fear            *float64 `json:"fear"`
	Joy             *float64 `json:"joy"`
	Sadness         *float64 `json:"sadness"`
	DominantEmotion *Label   `json:"dominant_emotion"`
	// Simulated marks results produced by keyword matching instead of the classifier.
	Simulated bool `json:"simulated"`
}

// Invalid returns a result with every field null.
func Invalid() Result {
	return Result{}
}

// FromScores builds a result and selects its dominant emotion.
func FromScores(s Scores) Result {
	dominant := s.Dominant()
	return Result{
		Anger:           float64Ptr(s.Anger),
		Disgust:         float64Ptr(s.Disgust),
		Fear:            float64Ptr(s.Fear),
		Joy:             float64Ptr(s.Joy),
		Sadness:         float64Ptr(s.Sadness),
		DominantEmotion: &dominant,
	}
}

// Valid 表示结果包含主导情绪。
func (r Result) Valid() bool {
	return r.DominantEmotion != nil
}

// Sentence 渲染对外返回的文本；无效结果返回 InvalidTextMessage。
func (r Result) Sentence() string {
	if !r.Valid() {
		return InvalidTextMessage
	}
	return fmt.Sprintf(
		"For the given statement, the system response is 'anger': %s, 'disgust': %s, 'fear': %s, 'joy': %s and 'sadness': %s. The dominant emotion is %s.",
		formatOptional(r.Anger),
		formatOptional(r.Disgust),
		formatOptional(r.Fear),
		formatOptional(r.Joy),
		formatOptional(r.Sadness),
		*r.DominantEmotion,
	)
}

// FormatScore 以最短可回读形式输出浮点数，整数值保留 ".0"，
// 绝对值小于 1e-4 或不小于 1e16 时使用科学计数法。
func FormatScore(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatOptional(v *float64) string {
	if v == nil {
		return "None"
	}
	return FormatScore(*v)
}

func float64Ptr(v float64) *float64 {
	return &v
}
