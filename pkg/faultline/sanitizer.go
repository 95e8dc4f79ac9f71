// sanitizer.go implements fail-closed redaction of sensitive event content.

package faultline

import (
	"regexp"
	"strings"
)

// SanitizerConfig controls redaction behavior.
type SanitizerConfig struct {
	// MaxMessageSize is the maximum length for event messages (default: 4096).
	MaxMessageSize int

	// MaxStackTraceSize is the maximum length for stack traces (default: 32768).
	MaxStackTraceSize int

	// MaxTagSize is the maximum size per tag value (default: 1024).
	MaxTagSize int

	// SanitizeMessages enables redaction of secrets/PII in messages (default: true).
	SanitizeMessages bool

	// FailClosed enables fail-closed behavior: content the sanitizer cannot
	// safely inspect is fully redacted instead of passed through (default: true).
	FailClosed bool
}

// DefaultSanitizerConfig returns production-safe defaults.
func DefaultSanitizerConfig() SanitizerConfig {
	return SanitizerConfig{
		MaxMessageSize:    4096,
		MaxStackTraceSize: 32768,
		MaxTagSize:        1024,
		SanitizeMessages:  true,
		FailClosed:        true,
	}
}

// Compiled regex patterns for message redaction (compiled once at package init)
var messageRedactPatterns = []*regexp.Regexp{
	// API keys and tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)(authorization|bearer)[=:\s]+['"]?[\w\-\.]+['"]?[\s]+['"]?[\w\-\.]+['"]?`), // Authorization: Bearer <token>
	regexp.MustCompile(`(?i)sk-[a-zA-Z0-9_-]{20,}`),        // OpenAI-style keys
	regexp.MustCompile(`(?i)ghp_[a-zA-Z0-9]{36}`),          // GitHub tokens
	regexp.MustCompile(`(?i)gho_[a-zA-Z0-9]{36}`),          // GitHub OAuth tokens
	regexp.MustCompile(`(?i)github_pat_[a-zA-Z0-9_]{22,}`), // GitHub PAT
	regexp.MustCompile(`(?i)xox[baprs]-[a-zA-Z0-9\-]{10,}`), // Slack tokens
	regexp.MustCompile(`(?i)eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`), // JWT tokens

	// Credentials
	regexp.MustCompile(`(?i)password[=:\s]+['"]?[^\s'"",]+['"]?`),
	regexp.MustCompile(`(?i)secret[=:\s]+['"]?[^\s'"",]+['"]?`),
	regexp.MustCompile(`(?i)passwd[=:\s]+['"]?[^\s'"",]+['"]?`),
	regexp.MustCompile(`(?i)credential[=:\s]+['"]?[^\s'"",]+['"]?`),

	// PII
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), // Email
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),                               // SSN
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),          // Credit card
}

// Sensitive key patterns for tags and extra (case-insensitive substring match)
var sensitiveKeyPatterns = []string{
	"token",
	"key",
	"secret",
	"password",
	"credential",
	"auth",
	"passwd",
}

// Path patterns to normalize in stack traces
var pathNormalizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/home/[^/]+/`),
	regexp.MustCompile(`/Users/[^/]+/`),
	regexp.MustCompile(`C:\\Users\\[^\\]+\\`),
	regexp.MustCompile(`/tmp/[^/]+/`),
}

var memoryAddressPattern = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// Sanitizer is a Processor that redacts secret-looking content from event
// messages, tags, and extra data, and normalizes stack trace paths. It never
// drops events; the verdict always keeps the (sanitized) event.
type Sanitizer struct {
	cfg SanitizerConfig
}

// NewSanitizer creates a sanitizer with the given configuration.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	return &Sanitizer{cfg: cfg}
}

// NewDefaultSanitizer creates a sanitizer with production-safe defaults.
func NewDefaultSanitizer() *Sanitizer {
	return NewSanitizer(DefaultSanitizerConfig())
}

// Name identifies the sanitizer in logs and drop accounting.
func (s *Sanitizer) Name() string {
	return "sanitizer"
}

// Process redacts the event in place and keeps it.
func (s *Sanitizer) Process(event *Event) Verdict {
	event.Message = s.sanitizeMessage(event.Message)
	event.StackTrace = s.sanitizeStackTrace(event.StackTrace)
	event.Tags = s.sanitizeTags(event.Tags)
	event.Extra = s.sanitizeMap(event.Extra)
	return Keep(event)
}

// sanitizeMessage redacts sensitive patterns from a message.
func (s *Sanitizer) sanitizeMessage(msg string) string {
	if !s.cfg.SanitizeMessages {
		return msg
	}

	// Truncate if too large first
	if len(msg) > s.cfg.MaxMessageSize {
		msg = truncateWithMarker(msg, s.cfg.MaxMessageSize)
	}

	result := msg
	for _, pattern := range messageRedactPatterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}

	return result
}

// sanitizeTags redacts sensitive keys and truncates long values.
func (s *Sanitizer) sanitizeTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}

	result := make(map[string]string, len(tags))
	for key, value := range tags {
		if isSensitiveKey(key) {
			result[key] = "[REDACTED]"
			continue
		}
		if len(value) > s.cfg.MaxTagSize {
			value = truncateWithMarker(value, s.cfg.MaxTagSize)
		}
		result[key] = value
	}

	return result
}

// sanitizeStackTrace normalizes paths and limits stack trace size.
func (s *Sanitizer) sanitizeStackTrace(trace string) string {
	if trace == "" {
		return trace
	}

	// Normalize paths (remove user-specific directories)
	result := trace
	for _, pattern := range pathNormalizationPatterns {
		result = pattern.ReplaceAllString(result, "/[PATH]/")
	}

	// Remove memory addresses (0x...)
	result = memoryAddressPattern.ReplaceAllString(result, "0x...")

	if len(result) > s.cfg.MaxStackTraceSize {
		result = truncateWithMarker(result, s.cfg.MaxStackTraceSize)
	}

	return result
}

// sanitizeMap recursively redacts a structured value map. Sensitive keys are
// redacted wholesale; string values get message redaction; values of types
// the sanitizer cannot inspect are redacted when FailClosed is set.
func (s *Sanitizer) sanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	result := make(map[string]any, len(m))
	for key, value := range m {
		if isSensitiveKey(key) {
			result[key] = "[REDACTED]"
			continue
		}
		result[key] = s.sanitizeValue(value)
	}
	return result
}

// sanitizeValue recursively redacts a structured value.
func (s *Sanitizer) sanitizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return s.sanitizeMap(v)
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = s.sanitizeValue(item)
		}
		return result
	case string:
		return s.sanitizeMessage(v)
	case nil, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		// Fail closed: values the sanitizer cannot inspect get redacted
		if s.cfg.FailClosed {
			return "[REDACTED:UNINSPECTABLE]"
		}
		return v
	}
}

// isSensitiveKey checks if a key matches sensitive patterns.
func isSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// truncateWithMarker truncates a string and adds a truncation marker.
func truncateWithMarker(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	marker := "...[TRUNCATED]"
	if maxLen <= len(marker) {
		return marker[:maxLen]
	}
	return s[:maxLen-len(marker)] + marker
}
