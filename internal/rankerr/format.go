package rankerr

import (
	"encoding/json"
)

// jsonError is the JSON representation of an error.
type jsonError struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Category string            `json:"category"`
	Severity string            `json:"severity"`
	Details  map[string]string `json:"details,omitempty"`
	Cause    string            `json:"cause,omitempty"`
}

// FormatJSON returns a JSON representation of the error. Suitable for
// machine consumption and structured logging sinks that don't speak slog.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	re, ok := err.(*RankError)
	if !ok {
		re = New(ErrCodeIndexError, err.Error(), err)
	}

	je := jsonError{
		Code:     re.Code,
		Message:  re.Message,
		Category: string(re.Category),
		Severity: string(re.Severity),
		Details:  re.Details,
	}

	if re.Cause != nil {
		je.Cause = re.Cause.Error()
	}

	return json.Marshal(je)
}

// LogAttrs formats an error as key-value pairs suitable for slog
// attributes, so callers can do
// `logger.Error("register_segment failed", rankerr.LogAttrs(err)...)`
// equivalents via slog.Any.
func LogAttrs(err error) map[string]any {
	if err == nil {
		return nil
	}

	re, ok := err.(*RankError)
	if !ok {
		return map[string]any{"error": err.Error()}
	}

	result := map[string]any{
		"error_code": re.Code,
		"message":    re.Message,
		"category":   string(re.Category),
		"severity":   string(re.Severity),
	}

	if re.Cause != nil {
		result["cause"] = re.Cause.Error()
	}

	for k, v := range re.Details {
		result["detail_"+k] = v
	}

	return result
}
