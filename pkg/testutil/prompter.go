package testutil

import (
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// PickResult is one scripted answer to PickDirectory.
type PickResult struct {
	Dir string
	OK  bool
}

// Message records one ShowMessage call.
type Message struct {
	Title   string
	Message string
	Kind    types.MessageKind
}

// ScriptedPrompter implements types.Prompter from scripted answers.
// When a script runs out the prompter answers Cancel (or no selection),
// so a test that under-scripts terminates instead of looping.
type ScriptedPrompter struct {
	InstallChoices  []types.InstallChoice
	Picks           []PickResult
	ConflictChoices []types.ConflictChoice

	// ConfirmErr, PickErr and ConflictErr are returned instead of an
	// answer when set.
	ConfirmErr  error
	PickErr     error
	ConflictErr error

	// Recorded calls
	InstallPrompts  []string
	InstallTitles   []string
	PickTitles      []string
	PickStarts      []string
	ConflictPrompts []types.ConflictPrompt
	Messages        []Message
}

// NewScriptedPrompter returns a prompter that accepts the default
// install directory and otherwise uses the given conflict answers.
func NewScriptedPrompter(conflicts ...types.ConflictChoice) *ScriptedPrompter {
	return &ScriptedPrompter{
		InstallChoices:  []types.InstallChoice{types.InstallAccept},
		ConflictChoices: conflicts,
	}
}

func (p *ScriptedPrompter) ConfirmInstall(title, message string) (types.InstallChoice, error) {
	p.InstallTitles = append(p.InstallTitles, title)
	p.InstallPrompts = append(p.InstallPrompts, message)
	if p.ConfirmErr != nil {
		return types.InstallCancel, p.ConfirmErr
	}
	if len(p.InstallChoices) == 0 {
		return types.InstallCancel, nil
	}
	choice := p.InstallChoices[0]
	p.InstallChoices = p.InstallChoices[1:]
	return choice, nil
}

func (p *ScriptedPrompter) PickDirectory(title, startDir string) (string, bool, error) {
	p.PickTitles = append(p.PickTitles, title)
	p.PickStarts = append(p.PickStarts, startDir)
	if p.PickErr != nil {
		return "", false, p.PickErr
	}
	if len(p.Picks) == 0 {
		return "", false, nil
	}
	pick := p.Picks[0]
	p.Picks = p.Picks[1:]
	return pick.Dir, pick.OK, nil
}

func (p *ScriptedPrompter) ResolveConflict(title string, prompt types.ConflictPrompt) (types.ConflictChoice, error) {
	p.ConflictPrompts = append(p.ConflictPrompts, prompt)
	if p.ConflictErr != nil {
		return types.ConflictCancel, p.ConflictErr
	}
	if len(p.ConflictChoices) == 0 {
		return types.ConflictCancel, nil
	}
	choice := p.ConflictChoices[0]
	p.ConflictChoices = p.ConflictChoices[1:]
	return choice, nil
}

func (p *ScriptedPrompter) ShowMessage(title, message string, kind types.MessageKind) error {
	p.Messages = append(p.Messages, Message{Title: title, Message: message, Kind: kind})
	return nil
}

// LastMessage returns the most recent ShowMessage call.
func (p *ScriptedPrompter) LastMessage() (Message, bool) {
	if len(p.Messages) == 0 {
		return Message{}, false
	}
	return p.Messages[len(p.Messages)-1], true
}

var _ types.Prompter = (*ScriptedPrompter)(nil)
