// Package handler contains the HTTP handlers for the campaign API.
package handler

// Logger is the logging capability handlers need.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
}
