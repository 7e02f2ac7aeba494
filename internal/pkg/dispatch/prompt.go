package dispatch

import (
	"fmt"
	"strings"
)

type prompt struct {
	Title   string
	Content string
	OkText  string
	Danger  bool
}

func buildPrompt(s Subject, cmd Command) prompt {
	k := cmd.Kind
	p := prompt{Danger: k.danger()}

	if cmd.bulk() {
		n := len(cmd.EntityIDs)
		p.Title = fmt.Sprintf("%s %d %s", k.title(), n, s.Plural)
		p.Content = fmt.Sprintf("Are you sure you want to %s all selected %s?", k.verb(), s.lowerPlural())
		p.OkText = k.title() + " All"
	} else {
		p.Title = fmt.Sprintf("%s %s", k.title(), s.Singular)
		p.Content = fmt.Sprintf("Are you sure you want to %s this %s?", k.verb(), s.lower())
		p.OkText = k.title()

		switch {
		case k == KindApprove && strings.TrimSpace(cmd.Payload.Note) != "":
			p.Content = "Approve with notes: " + cmd.Payload.Note
		case k == KindReject && strings.TrimSpace(cmd.Payload.Reason) != "":
			p.Content = "Reject with reason: " + cmd.Payload.Reason
		}
	}

	if k == KindDelete {
		p.Content += " This action cannot be undone."
	}
	return p
}

func emptySelection(s Subject, k Kind) *EmptySelectionError {
	return &EmptySelectionError{
		Message: fmt.Sprintf("Please select %s to %s", s.lowerPlural(), k.verb()),
	}
}

func summarize(s Subject, r *Result) {
	k := r.Command.Kind
	total := len(r.Outcomes)

	switch {
	case r.Failed == 0 && total == 1:
		r.Level = LevelSuccess
		r.Message = fmt.Sprintf("%s %s %s", s.sentence(), r.Outcomes[0].ID, k.done())
	case r.Failed == 0:
		r.Level = LevelSuccess
		r.Message = fmt.Sprintf("%d %s %s", total, s.lowerPlural(), k.done())
	case r.Succeeded == 0 && total == 1:
		r.Level = LevelError
		r.Message = fmt.Sprintf("Failed to %s %s %s: %s", k.verb(), s.lower(), r.Outcomes[0].ID, r.Outcomes[0].Error)
	case r.Succeeded == 0:
		r.Level = LevelError
		r.Message = fmt.Sprintf("Failed to %s %d %s", k.verb(), total, s.lowerPlural())
	default:
		r.Level = LevelWarning
		r.Message = fmt.Sprintf("%d %s %s, %d failed", r.Succeeded, s.lowerPlural(), k.done(), r.Failed)
	}
}
