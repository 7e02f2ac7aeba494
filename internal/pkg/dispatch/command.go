// Package dispatch turns user commands into confirmation-gated state
// transitions on the seed collection.
package dispatch

import (
	"errors"
	"strings"
)

var (
	ErrEmptySelection        = errors.New("no items selected")
	ErrReasonRequired        = errors.New("a reason is required")
	ErrNotFound              = errors.New("entity not found")
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrUnknownEntity         = errors.New("unknown entity type")
	ErrUnsupportedKind       = errors.New("action not supported for entity type")
	ErrConfirmationNotFound  = errors.New("confirmation not found")
	ErrConfirmationExpired   = errors.New("confirmation expired")
	ErrDuplicateRegistration = errors.New("entity type already registered")
)

// EmptySelectionError carries the warning shown to the user.
type EmptySelectionError struct {
	Message string
}

func (e *EmptySelectionError) Error() string { return e.Message }

func (e *EmptySelectionError) Is(target error) bool { return target == ErrEmptySelection }

type Kind string

const (
	KindApprove  Kind = "approve"
	KindReject   Kind = "reject"
	KindSubmit   Kind = "submit"
	KindResubmit Kind = "resubmit"
	KindCancel   Kind = "cancel"
	KindDelete   Kind = "delete"
)

func (k Kind) Valid() bool {
	switch k {
	case KindApprove, KindReject, KindSubmit, KindResubmit, KindCancel, KindDelete:
		return true
	}
	return false
}

func (k Kind) verb() string {
	return string(k)
}

func (k Kind) title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// done is the success phrase following the subject, e.g. "approved successfully".
func (k Kind) done() string {
	switch k {
	case KindApprove:
		return "approved successfully"
	case KindReject:
		return "rejected"
	case KindSubmit:
		return "submitted successfully"
	case KindResubmit:
		return "returned to draft"
	case KindCancel:
		return "cancelled"
	case KindDelete:
		return "deleted successfully"
	}
	return string(k)
}

func (k Kind) danger() bool {
	return k == KindReject || k == KindDelete || k == KindCancel
}

// Actor identifies who issued a command.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type Payload struct {
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty"`
	Actor  Actor  `json:"actor"`
}

type Command struct {
	Kind       Kind     `json:"kind"`
	EntityType string   `json:"entity_type"`
	EntityIDs  []string `json:"entity_ids"`
	Payload    Payload  `json:"payload"`
}

func (c Command) bulk() bool {
	return len(c.EntityIDs) > 1
}

// Subject names an entity type in prompts, e.g. "Leave Request".
type Subject struct {
	Singular string
	Plural   string
}

func (s Subject) lower() string       { return strings.ToLower(s.Singular) }
func (s Subject) lowerPlural() string { return strings.ToLower(s.Plural) }

// sentence is the singular in sentence case, e.g. "Leave request".
func (s Subject) sentence() string {
	l := s.lower()
	if l == "" {
		return l
	}
	return strings.ToUpper(l[:1]) + l[1:]
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Outcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

type Result struct {
	Command   Command   `json:"command"`
	Outcomes  []Outcome `json:"outcomes"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}

// SucceededIDs lists the ids that transitioned.
func (r Result) SucceededIDs() []string {
	var ids []string
	for _, o := range r.Outcomes {
		if o.OK {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
