package request

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrValidation is matched by every validation failure.
var ErrValidation = errors.New("request validation failed")

// ErrArgument is matched by every ArgumentError.
var ErrArgument = errors.New("invalid argument")

// FailureMode names the rule a request broke.
type FailureMode int

const (
	MissingTemplateID FailureMode = iota + 1
	MissingRecipientAddress
	MissingSenderAddress
	MissingCampaignID
	MissingCustomerAddress
	MissingTemplateName
	MissingTemplateSubject
	MissingTemplateHTML
	MissingLocale
	MissingVersionID
	EmptyBatch
	NestedBatch
)

var failureModeNames = map[FailureMode]string{
	MissingTemplateID:       "MissingTemplateId",
	MissingRecipientAddress: "MissingRecipientAddress",
	MissingSenderAddress:    "MissingSenderAddress",
	MissingCampaignID:       "MissingCampaignId",
	MissingCustomerAddress:  "MissingCustomerAddress",
	MissingTemplateName:     "MissingTemplateName",
	MissingTemplateSubject:  "MissingTemplateSubject",
	MissingTemplateHTML:     "MissingTemplateHtml",
	MissingLocale:           "MissingLocale",
	MissingVersionID:        "MissingVersionId",
	EmptyBatch:              "EmptyBatch",
	NestedBatch:             "NestedBatch",
}

func (m FailureMode) String() string {
	if name, ok := failureModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FailureMode(%d)", int(m))
}

// ValidationError reports the first rule a request failed.
type ValidationError struct {
	Mode FailureMode
}

func (e *ValidationError) Error() string {
	return "request validation failed: " + e.Mode.String()
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ItemFailure is the validation failure of one batch item.
type ItemFailure struct {
	Index int
	Err   error
}

// AggregateValidationError collects the failures of every invalid item in a
// batch, in item order.
type AggregateValidationError struct {
	Failures []ItemFailure
}

func (e *AggregateValidationError) Error() string {
	return "batch validation failed: " + multierr.Combine(e.Unwrap()...).Error()
}

// Unwrap returns the item errors, each prefixed with its position.
func (e *AggregateValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, fmt.Errorf("item %d: %w", f.Index, f.Err))
	}
	return errs
}

// Is matches ErrValidation.
func (e *AggregateValidationError) Is(target error) bool { return target == ErrValidation }

// ArgumentError reports a caller error: a nil request, a request of a type an
// operation cannot handle, or an empty batch.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return "invalid argument: " + e.Message
}

// Is matches ErrArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

// NewArgumentError creates an ArgumentError with a formatted message.
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}
