package handbook

import "context"

// Question is a single question-answering request.
type Question struct {
	Text string `json:"question"`

	// AccessCode identifies the caller for quota accounting.
	// Ignored when the Asker has no access-code gate.
	AccessCode string `json:"code,omitempty"`
}

// Validate returns an error if the question contains invalid fields.
func (q *Question) Validate() error {
	if q.Text == "" {
		return Errorf(EINVALID, "question required")
	}
	return nil
}

// Answer is the result of answering a Question.
type Answer struct {
	Text string `json:"answer"`

	// Prompt is the exact text sent to the answering oracle.
	Prompt string `json:"-"`

	// Sections lists the canonical keys included in the context,
	// in discovery order.
	Sections []string `json:"sections"`

	// Used and Limit report quota usage after this question,
	// when an access code was checked.
	Used  int `json:"used,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Asker provides natural language question answering over the handbook.
type Asker interface {
	// Ask answers a question about the handbook.
	// Returns EINVALID for an empty question and EFORBIDDEN if the access
	// code is unknown or its quota is exhausted.
	Ask(ctx context.Context, q *Question) (*Answer, error)
}
