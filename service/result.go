package service

import "fmt"

type FailureKind int

const (
	// FailureTransport covers connection errors, timeouts and non-2xx statuses.
	FailureTransport FailureKind = iota + 1
	// FailureResponseShape means the body parsed but had no choices[0].message.content.
	FailureResponseShape
	FailureUnexpected
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureResponseShape:
		return "response_shape"
	case FailureUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

type Failure struct {
	Kind    FailureKind
	Message string
	// Detail is the parsed error body for transport failures and the raw
	// response for shape failures.
	Detail string
}

// Result is either a generated text or a Failure, never both.
type Result struct {
	Output  string
	Failure *Failure
}

func Success(output string) Result {
	return Result{Output: output}
}

func Fail(kind FailureKind, message, detail string) Result {
	return Result{Failure: &Failure{Kind: kind, Message: message, Detail: detail}}
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// Display renders the result for an output box. Failures always render to a
// non-empty string.
func (r Result) Display() string {
	if r.Failure == nil {
		return r.Output
	}
	f := r.Failure
	switch f.Kind {
	case FailureTransport:
		return fmt.Sprintf("Error calling Hugging Face API: %s\nDetails: %s", f.Message, f.Detail)
	case FailureResponseShape:
		return fmt.Sprintf("Error: Unexpected API response structure. Full response: %s", f.Detail)
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", f.Message)
	}
}
