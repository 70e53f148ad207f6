package logging

import "strings"

const redactedValue = "[REDACTED]"

// Redactor removes SRP secret material from log fields. Anything that
// would let a reader reconstruct a password, verifier, or session key is
// redacted by key name.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a Redactor covering the protocol's secret vocabulary.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			"password": true,
			"verifier": true,
			"salt":     true,
			"secret":   true,
			"key":      true,

			// Handshake values; the private ephemerals must never be
			// logged, the proofs and session key are key-equivalent.
			"a":           true,
			"b":           true,
			"m1":          true,
			"m2":          true,
			"proof":       true,
			"session_key": true,
		},
	}
}

// RedactFields returns a copy of fields with sensitive values replaced.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))
	for k, v := range fields {
		if r.isSensitive(k) {
			redacted[k] = redactedValue
			continue
		}
		redacted[k] = v
	}
	return redacted
}

func (r *Redactor) isSensitive(key string) bool {
	lower := strings.ToLower(key)
	if r.sensitiveKeys[lower] {
		return true
	}
	// Compound keys like "srp_verifier" or "client_proof".
	for sensitive := range r.sensitiveKeys {
		if len(sensitive) > 1 && strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
