package store

import "github.com/nick-dorsch/todo/pkg/models"

// EditRequest carries replacement values for an edit. A nil field means
// the user gave no new value for it.
type EditRequest struct {
	Title    *string
	Datetime *string
}

// EditPrompter asks the user for replacement values. Implementations call
// reply exactly once, either before PromptEdit returns or later (for
// example when a form is submitted). Replying with a zero EditRequest
// cancels the edit.
type EditPrompter interface {
	PromptEdit(current models.Task, reply func(EditRequest))
}

// RequestEdit solicits replacement values for the task at index and
// applies them when the prompter replies. The reply is bound to the
// position the task had when the prompt was opened.
func (s *Store) RequestEdit(index int, p EditPrompter) bool {
	current, ok := s.Get(index)
	if !ok {
		s.logger.Debug("edit prompt ignored", "index", index)
		return false
	}

	var replied bool
	p.PromptEdit(current, func(req EditRequest) {
		if replied {
			return
		}
		replied = true
		s.Edit(index, req.Title, req.Datetime)
	})
	return true
}
