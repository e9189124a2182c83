// Package model defines the core domain models used throughout the application.
package model

// Category represents one spending category from the static catalog.
// Categories are loaded once at process start and never mutated.
type Category struct {
	ID        string
	Name      string
	GroupID   string
	GroupName string
}
