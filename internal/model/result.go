package model

import "time"

// CategorizationResult is the outcome of categorizing one merchant.
// Instances are created per call and become durable only when committed
// into merchant memory.
type CategorizationResult struct {
	UpdatedAt    time.Time
	CategoryID   string
	CategoryName string
	GroupID      string
	GroupName    string
	Method       Method
	Confidence   float64
}

// CategorySuggestion is a candidate result produced by the suggestion
// path. Suggestions are provisional and never persisted.
type CategorySuggestion struct {
	CategoryID   string
	CategoryName string
	GroupID      string
	GroupName    string
	Rationale    string
	Score        float64
}
