package normalizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apinorm/internal/logger"
	"apinorm/internal/models"
	"apinorm/pkg/textutil"
)

// DefaultMaxErrors is the advisory threshold for consecutive degraded
// calls. Exceeding it changes nothing but the log output and report status.
const DefaultMaxErrors = 5

const previewWidth = 60

// Advisory strings returned by GenerateErrorReport.
var (
	degradedRecommendations = []string{
		"Review upstream response shapes against the synonym table",
		"Enable debug logging to capture raw responses",
	}
	criticalRecommendations = []string{
		"Switch traffic to a known-good API version",
		"Extend the synonym table to cover the new response shape",
	}
)

// Options configures a single handler call.
type Options struct {
	// RequiredFields lists canonical fields that must be populated;
	// missing ones are defaulted and recorded as validation issues.
	RequiredFields []string
	// EnableLogging gates diagnostic output only, never returned data.
	EnableLogging bool
	// EnableFallback converts processing faults into fallback records.
	// When false, faults propagate to the caller.
	EnableFallback bool
}

// DefaultOptions returns the standard handler options: content required,
// logging and fallback enabled.
func DefaultOptions() Options {
	return Options{
		RequiredFields: []string{models.FieldContent},
		EnableLogging:  true,
		EnableFallback: true,
	}
}

// APICall is a caller-supplied transport invocation producing a raw,
// untyped response.
type APICall func(ctx context.Context) (any, error)

// NormalizedCall is an APICall whose result has been normalized.
type NormalizedCall func(ctx context.Context) (models.NormalizedResponse, error)

// Handler wraps a Validator with required-field enforcement, error-count
// tracking across calls, and fault isolation. Each logical consumer should
// own its own handler instance; the error count is per instance.
type Handler struct {
	validator *Validator
	log       *logger.Logger

	mu         sync.Mutex
	errorCount int
	maxErrors  int
}

// NewHandler creates a handler around a fresh validator.
func NewHandler(log *logger.Logger) *Handler {
	return NewHandlerWith(NewValidator(), log)
}

// NewHandlerWith creates a handler around an explicitly configured
// validator.
func NewHandlerWith(validator *Validator, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}

	return &Handler{
		validator: validator,
		log:       log,
		maxErrors: DefaultMaxErrors,
	}
}

// SetMaxErrors overrides the advisory threshold. Values below 1 are ignored.
func (h *Handler) SetMaxErrors(n int) {
	if n < 1 {
		return
	}

	h.mu.Lock()
	h.maxErrors = n
	h.mu.Unlock()
}

// Validator returns the wrapped validator, for direct fallback access.
func (h *Handler) Validator() *Validator {
	return h.validator
}

// HandleAPIResponse normalizes a raw response. Any fault during
// normalization is caught here: with fallback enabled the caller receives
// a complete fallback record, otherwise the fault propagates. The caller
// never receives a nil record alongside a nil error.
func (h *Handler) HandleAPIResponse(raw any, opts Options) (resp models.NormalizedResponse, err error) {
	log := h.log
	if !opts.EnableLogging {
		log = logger.Nop()
	}

	required := opts.RequiredFields
	if len(required) == 0 {
		required = []string{models.FieldContent}
	}

	defer func() {
		if r := recover(); r != nil {
			resp, err = h.recoverFault(log, fmt.Errorf("normalization panic: %v", r), opts)
		}
	}()

	resp, err = h.validator.ValidateAndNormalize(raw, required)
	if err != nil {
		return h.recoverFault(log, err, opts)
	}

	issues := resp.Issues()
	if len(issues) == 0 {
		h.resetErrors()
		log.Debug("response normalized cleanly",
			"content", textutil.Preview(resp.Content(), previewWidth))

		return resp, nil
	}

	count, threshold := h.recordError()
	log.Warn("response normalized with issues",
		"issues", issues,
		"errorCount", count)

	if count > threshold {
		log.Error("consecutive degraded responses exceeded threshold",
			"errorCount", count,
			"maxErrors", threshold)
	}

	return resp, nil
}

// WrapAPICall returns a callable with the same contract as call that
// pipes every result through HandleAPIResponse. A fault in the call
// itself yields the fallback record unless fallback is disabled.
func (h *Handler) WrapAPICall(call APICall, opts Options) NormalizedCall {
	return func(ctx context.Context) (models.NormalizedResponse, error) {
		raw, err := call(ctx)
		if err != nil {
			if !opts.EnableFallback {
				return nil, fmt.Errorf("api call failed: %w", err)
			}

			if opts.EnableLogging {
				h.log.Warn("api call failed, returning fallback", "error", err)
			}

			return h.validator.CreateFallbackResponse(), nil
		}

		return h.HandleAPIResponse(raw, opts)
	}
}

// GenerateErrorReport snapshots the handler's error tracking with fixed,
// deterministic recommendations.
func (h *Handler) GenerateErrorReport() models.ErrorReport {
	h.mu.Lock()
	count := h.errorCount
	threshold := h.maxErrors
	h.mu.Unlock()

	report := models.ErrorReport{
		Timestamp:       time.Now().UTC(),
		ErrorCount:      count,
		MaxErrors:       threshold,
		Status:          models.StatusNormal,
		Recommendations: []string{},
	}

	if count > 0 {
		report.Recommendations = append(report.Recommendations, degradedRecommendations...)
	}

	if count > threshold {
		report.Status = models.StatusCritical
		report.Recommendations = append(report.Recommendations, criticalRecommendations...)
	}

	return report
}

// ErrorCount returns the current consecutive-degraded-call count.
func (h *Handler) ErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.errorCount
}

func (h *Handler) recoverFault(log *logger.Logger, cause error, opts Options) (models.NormalizedResponse, error) {
	if !opts.EnableFallback {
		return nil, fmt.Errorf("response handling failed: %w", cause)
	}

	log.Error("response handling failed, returning fallback", "error", cause)

	return h.validator.CreateFallbackResponse(), nil
}

func (h *Handler) recordError() (count, threshold int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errorCount++

	return h.errorCount, h.maxErrors
}

func (h *Handler) resetErrors() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errorCount = 0
}
