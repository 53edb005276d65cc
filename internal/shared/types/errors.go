package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRegion   = errors.New("no AWS region configured. Set region in the config file or IDLE_AUDIT_REGION")
	ErrMissingTopic    = errors.New("no SNS topic configured. Set topic_arn in the config file or IDLE_AUDIT_TOPIC_ARN")
	ErrVolumeNotFound  = errors.New("volume not found")
	ErrInvalidStopTime = errors.New("invalid stop time in state transition reason")
)

// DetectorError identifies which detector aborted an audit run.
type DetectorError struct {
	Detector string
	Err      error
}

func (e *DetectorError) Error() string {
	return fmt.Sprintf("detector %s failed: %v", e.Detector, e.Err)
}

func (e *DetectorError) Unwrap() error {
	return e.Err
}
