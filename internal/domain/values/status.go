package values

import "fmt"

// Status represents the final status of a check run.
type Status string

const (
	// StatusPass indicates the check passed
	StatusPass Status = "pass"
	// StatusFail indicates the check failed (unwaived violations remain)
	StatusFail Status = "fail"
)

// IsFailure returns true if this status represents a failure
func (s Status) IsFailure() bool {
	return s == StatusFail
}

// IsSuccess returns true if this status represents success
func (s Status) IsSuccess() bool {
	return s == StatusPass
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusPass, StatusFail:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}
