package model

import (
	"fmt"
	"strings"
)

// Method indicates how a categorization result was produced.
type Method string

const (
	// MethodAutomatic means the classification backend decided on its own.
	MethodAutomatic Method = "AUTOMATIC"
	// MethodManual means the user picked the category directly.
	MethodManual Method = "MANUAL"
	// MethodHybrid means the backend suggested and the user confirmed.
	MethodHybrid Method = "HYBRID"
	// MethodCached means the result came from merchant memory.
	MethodCached Method = "CACHED"
)

// ParseMethod converts a user-supplied string into a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTOMATIC", "AUTO":
		return MethodAutomatic, nil
	case "MANUAL":
		return MethodManual, nil
	case "HYBRID":
		return MethodHybrid, nil
	case "CACHED":
		return MethodCached, nil
	default:
		return "", fmt.Errorf("unknown categorization method: %q", s)
	}
}
