package adapter

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrorKind partitions backend-call failures into the two outcomes the
// caller can act on: wait/upgrade, or report and move on.
type ErrorKind int

const (
	KindQuotaExceeded ErrorKind = iota
	KindUpstreamFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindUpstreamFailure:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// ClassifiedError wraps a backend failure with its classification. The
// original error is preserved and reachable through Unwrap.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	if e == nil {
		return "backend error"
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *ClassifiedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorClassifier turns a raw backend failure into a ClassifiedError. The
// two-way outcome is the stable contract; the matching rule behind it is an
// implementation detail of the concrete classifier.
type ErrorClassifier interface {
	Classify(err error) *ClassifiedError
}

// SubstringClassifier matches the backend's quota-exhaustion signatures in
// the error message text. The backend does not expose a structured status on
// every failure path, so message matching is the rule of record.
type SubstringClassifier struct {
	log *zap.Logger
}

// NewSubstringClassifier creates the default classifier.
func NewSubstringClassifier(log *zap.Logger) *SubstringClassifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubstringClassifier{log: log}
}

// Classify never fails; it always yields one of the two kinds.
func (c *SubstringClassifier) Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return &ClassifiedError{Kind: KindQuotaExceeded, Err: err}
	}

	c.log.Warn("generation backend failure", zap.Error(err))
	return &ClassifiedError{Kind: KindUpstreamFailure, Err: err}
}

// IsQuotaExceeded reports whether err carries a quota-exhaustion
// classification anywhere in its chain.
func IsQuotaExceeded(err error) bool {
	var classified *ClassifiedError
	return errors.As(err, &classified) && classified.Kind == KindQuotaExceeded
}
