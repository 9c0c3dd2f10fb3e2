package ai

import (
	"context"
	"log"
	"net"
	"strings"
)

// FallbackService chains classifiers: the primary provider is tried first,
// then the secondary. When every provider fails, it degrades to the fixed
// safe-default result instead of returning an error, so callers always
// receive a schema-valid classification.
type FallbackService struct {
	primary   Classifier
	secondary Classifier
}

// NewFallbackService creates a fallback chain. Either provider may be nil.
func NewFallbackService(primary, secondary Classifier) *FallbackService {
	return &FallbackService{
		primary:   primary,
		secondary: secondary,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// ClassifyEmail never returns an error: provider failures degrade
// classification quality, not availability. Every degradation is logged so
// low-quality runs stay diagnosable.
func (f *FallbackService) ClassifyEmail(ctx context.Context, sender, subject, body string) (*ClassificationResult, error) {
	var primaryErr error
	if f.primary != nil {
		result, err := f.primary.ClassifyEmail(ctx, sender, subject, body)
		if err == nil {
			return result, nil
		}
		primaryErr = err

		switch {
		case isQuotaError(err):
			log.Printf("[Classifier] primary provider quota exhausted: %v, falling back", err)
		case isConnectionError(err):
			log.Printf("[Classifier] primary provider unreachable: %v, falling back", err)
		default:
			log.Printf("[Classifier] primary provider error: %v, falling back", err)
		}
	}

	if f.secondary != nil {
		result, err := f.secondary.ClassifyEmail(ctx, sender, subject, body)
		if err == nil {
			return result, nil
		}
		log.Printf("[Classifier] secondary provider error: %v", err)
	}

	log.Printf("[Classifier] all providers failed (primary: %v), returning default classification", primaryErr)
	return DefaultResult(), nil
}
