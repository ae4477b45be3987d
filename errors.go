package questgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrMissingInput         = errors.New("questgraph: missing input")
	ErrMalformedDocument    = errors.New("questgraph: malformed document")
	ErrMalformedQuestRecord = errors.New("questgraph: malformed quest record")
	ErrWriteFailure         = errors.New("questgraph: write failure")
	ErrNilGraph             = errors.New("questgraph: nil graph")
	ErrGraphNotFound        = errors.New("questgraph: graph not found")
)

// MissingInputError reports a declared input path that does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingInput.Error(), e.Path)
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// MalformedDocumentError reports a document that cannot be read as a quest
// document. Path is empty for in-memory documents, Field is empty when the
// whole document is at fault.
type MalformedDocumentError struct {
	Path  string
	Field string
	Err   error
}

func (e *MalformedDocumentError) Error() string {
	msg := ErrMalformedDocument.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedDocument}
	}
	return []error{ErrMalformedDocument, e.Err}
}

// MalformedQuestRecordError names the quest whose record has an impossible
// shape.
type MalformedQuestRecordError struct {
	QuestID string
	Field   string
	Msg     string
}

func (e *MalformedQuestRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: quest %q: %s: %s", ErrMalformedQuestRecord.Error(), e.QuestID, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: quest %q: %s", ErrMalformedQuestRecord.Error(), e.QuestID, e.Msg)
}

func (e *MalformedQuestRecordError) Unwrap() error { return ErrMalformedQuestRecord }

// WriteFailureError reports an output that could not be written.
type WriteFailureError struct {
	Path string
	Err  error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrWriteFailure.Error(), e.Path, e.Err)
}

func (e *WriteFailureError) Unwrap() []error { return []error{ErrWriteFailure, e.Err} }
