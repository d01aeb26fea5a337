package prompt

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

const (
	optionYes       = "Yes"
	optionChoose    = "Choose another directory"
	optionCancel    = "Cancel"
	optionYesToAll  = "Yes To All"
	optionNo        = "No"
	cancelDirectory = "-"
)

var (
	installOptions  = []string{optionYes, optionChoose, optionCancel}
	conflictOptions = []string{optionYes, optionYesToAll, optionNo, optionCancel}
)

// SelectFunc shows options under title and returns the chosen one.
// interrupted reports that the operator pressed Ctrl+C.
type SelectFunc func(title string, options []string, def string) (choice string, interrupted bool, err error)

// InputFunc reads one line of text prefilled with def.
type InputFunc func(title, def string) (text string, interrupted bool, err error)

// TerminalPrompter uses interactive selects and text inputs.
type TerminalPrompter struct {
	out      io.Writer
	selectFn SelectFunc
	inputFn  InputFunc
}

// NewTerminalPrompter returns a prompter backed by pterm's interactive
// printers.
func NewTerminalPrompter(out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{out: out, selectFn: ptermSelect, inputFn: ptermInput}
}

func ptermSelect(title string, options []string, def string) (string, bool, error) {
	interrupted := false
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(def).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(title)
	return choice, interrupted, err
}

func ptermInput(title, def string) (string, bool, error) {
	interrupted := false
	text, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(title)
	return text, interrupted, err
}

func (p *TerminalPrompter) show(title, message string) {
	fmt.Fprintln(p.out, pterm.DefaultBox.WithTitle(title).Sprint(message))
}

func (p *TerminalPrompter) choose(title string, options []string, def string) (string, error) {
	choice, interrupted, err := p.selectFn(title, options, def)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPrompt, "interactive select failed")
	}
	if interrupted {
		return optionCancel, nil
	}
	return choice, nil
}

func (p *TerminalPrompter) ConfirmInstall(title, message string) (types.InstallChoice, error) {
	p.show(title, message)
	choice, err := p.choose("Install now?", installOptions, optionYes)
	if err != nil {
		return types.InstallCancel, err
	}
	switch choice {
	case optionYes:
		return types.InstallAccept, nil
	case optionChoose:
		return types.InstallChooseOther, nil
	default:
		return types.InstallCancel, nil
	}
}

func (p *TerminalPrompter) PickDirectory(title, startDir string) (string, bool, error) {
	fmt.Fprintln(p.out, pterm.DefaultSection.Sprint(title))
	text, interrupted, err := p.inputFn("Directory (- to cancel)", startDir)
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrPrompt, "directory input failed")
	}
	if interrupted || text == "" || text == cancelDirectory {
		return "", false, nil
	}
	return text, true, nil
}

func (p *TerminalPrompter) ResolveConflict(title string, prompt types.ConflictPrompt) (types.ConflictChoice, error) {
	p.show(pterm.Warning.MessageStyle.Sprint(title), prompt.Message)
	choice, err := p.choose("Overwrite "+prompt.FileName+"?", conflictOptions, optionNo)
	if err != nil {
		return types.ConflictCancel, err
	}
	switch choice {
	case optionYes:
		return types.ConflictYes, nil
	case optionYesToAll:
		return types.ConflictYesToAll, nil
	case optionNo:
		return types.ConflictNo, nil
	default:
		return types.ConflictCancel, nil
	}
}

func (p *TerminalPrompter) ShowMessage(title, message string, kind types.MessageKind) error {
	printer := pterm.Info
	switch kind {
	case types.MessageWarning:
		printer = pterm.Warning
	case types.MessageError:
		printer = pterm.Error
	}
	fmt.Fprintln(p.out, printer.Sprint(title))
	p.show(title, message)
	return nil
}

var _ types.Prompter = (*TerminalPrompter)(nil)
