package emotion

import (
	"context"
	"errors"
	"fmt"

	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

// Classifier 调用外部分类服务返回五项情绪得分。
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (model.Scores, error)
}

// FailureKind 区分外部调用失败的类型。
type FailureKind int

const (
	// KindTransport covers connection errors, timeouts and cancelled contexts.
	KindTransport FailureKind = iota
	// KindBadRequest means the service rejected the input with HTTP 400.
	KindBadRequest
	// KindMalformed means the service answered with an unusable body.
	KindMalformed
)

// String returns string representation of the kind
func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBadRequest:
		return "bad_request"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ClassifyError 描述一次失败的分类调用。
type ClassifyError struct {
	Kind FailureKind
	Err  error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Kind, e.Err)
}

func (e *ClassifyError) Unwrap() error {
	return e.Err
}

func transportError(err error) error {
	return &ClassifyError{Kind: KindTransport, Err: err}
}

func malformedError(err error) error {
	return &ClassifyError{Kind: KindMalformed, Err: err}
}

// KindOf 返回错误的失败类型；非 ClassifyError 一律视为传输错误。
func KindOf(err error) FailureKind {
	var classifyErr *ClassifyError
	if errors.As(err, &classifyErr) {
		return classifyErr.Kind
	}
	return KindTransport
}
