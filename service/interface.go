// Package service defines the lifecycle shared by long-lived infrastructure (mail delivery,
// audio output) and a Hub that runs it in dependency order.
package service

// Service defines the lifecycle interface for infrastructure subsystems
//
// Lifecycle:
//  1. Construction (via constructor)
//  2. Init(args...) - configuration from parsed flags/config
//  3. Start() - acquire devices, launch goroutines
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
