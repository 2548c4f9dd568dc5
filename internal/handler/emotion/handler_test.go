package emotion

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
)

func newClassifierServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func unreachableURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func setupRouter(t *testing.T, classifierURL string, simulation bool) *chi.Mux {
	t.Helper()
	client, err := emotionservice.NewWatsonClient(emotionservice.WatsonConfig{URL: classifierURL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewWatsonClient err: %v", err)
	}
	svc := emotionservice.NewService(client, emotionservice.Config{SimulationEnabled: simulation}, nil)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func get(r http.Handler, path, text string, withParam bool) *httptest.ResponseRecorder {
	target := path
	if withParam {
		target += "?" + url.Values{textParam: {text}}.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestDetectRendersSentence(t *testing.T) {
	classifier := newClassifierServer(t, http.StatusOK, `{"emotionPredictions":[{"emotion":{"anger":0.1,"disgust":0.1,"fear":0.1,"joy":0.6,"sadness":0.1}}]}`)
	r := setupRouter(t, classifier, true)

	resp := get(r, "/emotionDetector", "I think I am having fun", true)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	want := "For the given statement, the system response is 'anger': 0.1, 'disgust': 0.1, 'fear': 0.1, 'joy': 0.6 and 'sadness': 0.1. The dominant emotion is joy."
	if got := resp.Body.String(); got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}
	if resp.Header().Get(simulatedHeader) != "" {
		t.Fatal("remote results must not be flagged as simulated")
	}
}

func TestDetectBlankOrMissingInput(t *testing.T) {
	r := setupRouter(t, unreachableURL(), true)

	for _, tc := range []struct {
		text      string
		withParam bool
	}{
		{"", false},
		{"", true},
		{"    ", true},
	} {
		resp := get(r, "/emotionDetector", tc.text, tc.withParam)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		if got := resp.Body.String(); got != model.InvalidTextMessage {
			t.Fatalf("expected invalid text message, got %q", got)
		}
	}
}

func TestDetectBadRequestShowsInvalidMessage(t *testing.T) {
	classifier := newClassifierServer(t, http.StatusBadRequest, `{"code":3}`)
	r := setupRouter(t, classifier, true)

	resp := get(r, "/emotionDetector", "???", true)
	if got := resp.Body.String(); got != model.InvalidTextMessage {
		t.Fatalf("expected invalid text message, got %q", got)
	}
}

func TestDetectTransportFailureServesSimulation(t *testing.T) {
	r := setupRouter(t, unreachableURL(), true)

	resp := get(r, "/emotionDetector", "I am so angry", true)

	want := "For the given statement, the system response is 'anger': 0.95, 'disgust': 0.02, 'fear': 0.03, 'joy': 0.01 and 'sadness': 0.04. The dominant emotion is anger."
	if got := resp.Body.String(); got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}
	if resp.Header().Get(simulatedHeader) != "true" {
		t.Fatal("expected simulated header")
	}
}

func TestDetectMalformedResponseServesSimulation(t *testing.T) {
	classifier := newClassifierServer(t, http.StatusOK, `{"unexpected":true}`)
	r := setupRouter(t, classifier, true)

	resp := get(r, "/emotionDetector", "nothing to see", true)

	want := "For the given statement, the system response is 'anger': 0.05, 'disgust': 0.03, 'fear': 0.07, 'joy': 0.75 and 'sadness': 0.15. The dominant emotion is joy."
	if got := resp.Body.String(); got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}
}

func TestDetectUnavailableWithoutSimulation(t *testing.T) {
	r := setupRouter(t, unreachableURL(), false)

	resp := get(r, "/emotionDetector", "I am so angry", true)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != UnavailableMessage {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestDetectJSON(t *testing.T) {
	r := setupRouter(t, unreachableURL(), true)

	resp := get(r, "/api/emotion", "This is a sad day", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Sadness         *float64 `json:"sadness"`
		DominantEmotion *string  `json:"dominant_emotion"`
		Simulated       bool     `json:"simulated"`
		Message         string   `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if payload.DominantEmotion == nil || *payload.DominantEmotion != "sadness" {
		t.Fatalf("expected sadness, got %v", payload.DominantEmotion)
	}
	if payload.Sadness == nil || *payload.Sadness != 0.95 || !payload.Simulated {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Message == "" {
		t.Fatal("expected message")
	}
}

func TestDetectJSONInvalidHasNulls(t *testing.T) {
	r := setupRouter(t, unreachableURL(), true)

	resp := get(r, "/api/emotion", "", true)

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	for _, key := range []string{"anger", "disgust", "fear", "joy", "sadness", "dominant_emotion"} {
		if v, ok := payload[key]; !ok || v != nil {
			t.Fatalf("expected %s to be null, got %v", key, v)
		}
	}
	if payload["message"] != model.InvalidTextMessage {
		t.Fatalf("unexpected message %v", payload["message"])
	}
}
