package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every error type in this
// package unwraps to exactly one of these.
var (
	ErrObjectNotFound          = errors.New("object not found")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsOutOfRange       = errors.New("value is out of range")
	ErrValueIsRequired         = errors.New("value is required")
	ErrVersionIsInvalid        = errors.New("version is invalid")
	ErrIllegalTransition       = errors.New("illegal transition")
	ErrInvalidManifestContents = errors.New("invalid manifest contents")
	ErrAlreadyReceived         = errors.New("manifest already received")
	ErrConcurrentModification  = errors.New("concurrent modification")
	ErrDetectionCycleAborted   = errors.New("detection cycle aborted")
	ErrAuditWriteFailed        = errors.New("audit write failed")
)

// sanitize flattens values into a single log-safe line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that a version value failed validation.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// IllegalTransitionError indicates that a shipment status transition is not
// permitted by the lifecycle state machine. It always identifies both the
// current and the requested status; callers are expected to correct the
// request rather than retry.
type IllegalTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given statuses.
func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

// NewIllegalTransitionErrorWithCause creates an IllegalTransitionError wrapping an underlying cause.
func NewIllegalTransitionErrorWithCause(from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: from %s to %s (cause: %s)", ErrIllegalTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: from %s to %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// InvalidManifestContentsError indicates that one or more AWBs cannot be
// consolidated into a manifest. It carries the full list of offending AWBs so
// an operator can correct all of them in one pass.
type InvalidManifestContentsError struct {
	AWBs  []string
	Cause error
}

// NewInvalidManifestContentsError creates an InvalidManifestContentsError listing the offending AWBs.
func NewInvalidManifestContentsError(awbs []string) *InvalidManifestContentsError {
	return &InvalidManifestContentsError{AWBs: awbs}
}

// NewInvalidManifestContentsErrorWithCause creates an InvalidManifestContentsError wrapping an underlying cause.
func NewInvalidManifestContentsErrorWithCause(awbs []string, cause error) *InvalidManifestContentsError {
	return &InvalidManifestContentsError{AWBs: awbs, Cause: cause}
}

func (e *InvalidManifestContentsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrInvalidManifestContents, strings.Join(e.AWBs, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidManifestContents, strings.Join(e.AWBs, ", "))
}

func (e *InvalidManifestContentsError) Unwrap() error {
	return ErrInvalidManifestContents
}

// AlreadyReceivedError indicates an attempt to receive a manifest that has
// already reached a terminal reconciliation status. The rejection is
// idempotent: no mutation is performed.
type AlreadyReceivedError struct {
	ManifestNumber string
}

// NewAlreadyReceivedError creates an AlreadyReceivedError for the given manifest.
func NewAlreadyReceivedError(manifestNumber string) *AlreadyReceivedError {
	return &AlreadyReceivedError{ManifestNumber: manifestNumber}
}

func (e *AlreadyReceivedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyReceived, e.ManifestNumber)
}

func (e *AlreadyReceivedError) Unwrap() error {
	return ErrAlreadyReceived
}

// ConcurrentModificationError indicates that an optimistic-lock write lost a
// race with another operator touching the same record.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for the given record.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// DetectionCycleAbortedError indicates that an SLA sweep was abandoned because
// a store read failed. No partial sweep result is committed; the next
// scheduled tick retries from scratch.
type DetectionCycleAbortedError struct {
	Stage string
	Cause error
}

// NewDetectionCycleAbortedError creates a DetectionCycleAbortedError for the failed sweep stage.
func NewDetectionCycleAbortedError(stage string, cause error) *DetectionCycleAbortedError {
	return &DetectionCycleAbortedError{Stage: stage, Cause: cause}
}

func (e *DetectionCycleAbortedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrDetectionCycleAborted, e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDetectionCycleAborted, e.Stage)
}

func (e *DetectionCycleAbortedError) Unwrap() error {
	return ErrDetectionCycleAborted
}

// AuditWriteFailedError indicates that an audit record could not be appended.
// Violation workers surface this to the queue so the job is retried; it is
// never swallowed.
type AuditWriteFailedError struct {
	RecordID string
	Cause    error
}

// NewAuditWriteFailedError creates an AuditWriteFailedError for the given record.
func NewAuditWriteFailedError(recordID string, cause error) *AuditWriteFailedError {
	return &AuditWriteFailedError{RecordID: recordID, Cause: cause}
}

func (e *AuditWriteFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrAuditWriteFailed, e.RecordID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAuditWriteFailed, e.RecordID)
}

func (e *AuditWriteFailedError) Unwrap() error {
	return ErrAuditWriteFailed
}
