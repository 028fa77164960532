package models

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrDistroDetect ErrorType = iota
	ErrRemoteExec
	ErrConfig
	ErrPrecondition
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrDistroDetect:
		return "DistroDetect"
	case ErrRemoteExec:
		return "RemoteExec"
	case ErrConfig:
		return "Config"
	case ErrPrecondition:
		return "Precondition"
	default:
		return "Unknown"
	}
}

// DeployError represents an error during a fleet operation
type DeployError struct {
	Type ErrorType
	Host string
	Err  error
}

// Error implements the error interface
func (e *DeployError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Host, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DeployError) Unwrap() error {
	return e.Err
}

// ConfigError reports a mandatory option missing from a repository section
type ConfigError struct {
	Key     string
	Section string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required key: %s in config section: %s", e.Key, e.Section)
}

// PreconditionError reports hosts that still have the package installed
// when a destructive purge was requested
type PreconditionError struct {
	Hosts []string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("refusing to purge data while ceph is still installed on: %s",
		strings.Join(e.Hosts, ", "))
}
