package emotion

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
	"github.com/zhouzirui/emotion-detector/pkg/utils"
)

const (
	textParam       = "textToAnalyze"
	simulatedHeader = "X-Emotion-Simulated"

	// UnavailableMessage is returned when the classifier failed and simulation is off.
	UnavailableMessage = "Emotion service unavailable! Please try again later!"
)

// Detector 是处理器依赖的情绪检测能力。
type Detector interface {
	Detect(ctx context.Context, text string) (model.Result, error)
}

// Handler 情绪检测的HTTP处理器
type Handler struct {
	detector Detector
}

// New 创建情绪检测处理器
func New(detector Detector) *Handler {
	return &Handler{detector: detector}
}

// RegisterRoutes 注册情绪检测相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/emotionDetector", h.handleDetect)
	r.Get("/api/emotion", h.handleDetectJSON)
}

// handleDetect 以文本句子返回检测结果
func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	result, err := h.detector.Detect(r.Context(), r.URL.Query().Get(textParam))
	if errors.Is(err, emotionservice.ErrUnavailable) {
		utils.RespondText(w, http.StatusServiceUnavailable, UnavailableMessage)
		return
	}

	markSimulated(w, result)
	utils.RespondText(w, http.StatusOK, result.Sentence())
}

type detectResponse struct {
	model.Result
	Message string `json:"message"`
}

// handleDetectJSON 以JSON返回检测结果
func (h *Handler) handleDetectJSON(w http.ResponseWriter, r *http.Request) {
	result, err := h.detector.Detect(r.Context(), r.URL.Query().Get(textParam))
	if errors.Is(err, emotionservice.ErrUnavailable) {
		utils.RespondError(w, http.StatusServiceUnavailable, UnavailableMessage)
		return
	}

	markSimulated(w, result)
	utils.RespondJSON(w, http.StatusOK, detectResponse{Result: result, Message: result.Sentence()})
}

func markSimulated(w http.ResponseWriter, result model.Result) {
	if result.Simulated {
		w.Header().Set(simulatedHeader, "true")
	}
}
