// Package prompt implements the operator dialogs on a console: a
// line-oriented prompter for plain streams and an interactive one for
// terminals.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/types"
	"github.com/arthur-debert/selfunzip/pkg/ui/styles"
)

// ConsolePrompter asks questions on a line-oriented stream. End of input
// answers every question with its cancel option.
type ConsolePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// NewConsolePrompter reads answers from in and writes prompts to out.
// Styled output uses the lipgloss styles.
func NewConsolePrompter(in io.Reader, out io.Writer, styled bool) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out, styled: styled}
}

func (p *ConsolePrompter) style(name, text string) string {
	if !p.styled {
		return text
	}
	return styles.Render(name, text)
}

func (p *ConsolePrompter) header(styleName, title, message string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.style(styleName, title))
	fmt.Fprintln(p.out, message)
}

// readLine returns the trimmed next line. ok is false at end of input.
func (p *ConsolePrompter) readLine() (line string, ok bool, err error) {
	line, err = p.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrPrompt, "failed to read operator input")
	}
	return strings.TrimSpace(line), true, nil
}

// ask shows question until the answer is one of the keys of answers. An
// empty answer picks def.
func (p *ConsolePrompter) ask(question, def string, answers map[string]string) (string, bool, error) {
	for {
		fmt.Fprint(p.out, p.style("Prompt", question)+" ")
		line, ok, err := p.readLine()
		if err != nil || !ok {
			return "", ok, err
		}
		line = strings.ToLower(line)
		if line == "" {
			line = def
		}
		if answer, found := answers[line]; found {
			return answer, true, nil
		}
		fmt.Fprintln(p.out, p.style("Warning", fmt.Sprintf("Unrecognized answer %q.", line)))
	}
}

func (p *ConsolePrompter) ConfirmInstall(title, message string) (types.InstallChoice, error) {
	p.header("Title", title, message)
	answer, ok, err := p.ask("[Y]es / [c]hoose another directory / [n]o, cancel:", "y", map[string]string{
		"y": "yes", "yes": "yes",
		"c": "choose", "choose": "choose",
		"n": "no", "no": "no", "q": "no",
	})
	if err != nil || !ok {
		return types.InstallCancel, err
	}
	switch answer {
	case "yes":
		return types.InstallAccept, nil
	case "choose":
		return types.InstallChooseOther, nil
	default:
		return types.InstallCancel, nil
	}
}

func (p *ConsolePrompter) PickDirectory(title, startDir string) (string, bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.style("Title", title))
	fmt.Fprintf(p.out, "%s [%s]: ", p.style("Prompt", "Directory"), p.style("FilePath", startDir))
	line, ok, err := p.readLine()
	if err != nil || !ok {
		return "", false, err
	}
	switch line {
	case "":
		return startDir, true, nil
	case "-":
		return "", false, nil
	default:
		return line, true, nil
	}
}

func (p *ConsolePrompter) ResolveConflict(title string, prompt types.ConflictPrompt) (types.ConflictChoice, error) {
	p.header("Warning", title, prompt.Message)
	answer, ok, err := p.ask("[y]es / yes to [a]ll / [n]o / [c]ancel:", "", map[string]string{
		"y": "yes", "yes": "yes",
		"a": "all", "all": "all",
		"n": "no", "no": "no",
		"c": "cancel", "cancel": "cancel",
	})
	if err != nil || !ok {
		return types.ConflictCancel, err
	}
	switch answer {
	case "yes":
		return types.ConflictYes, nil
	case "all":
		return types.ConflictYesToAll, nil
	case "no":
		return types.ConflictNo, nil
	default:
		return types.ConflictCancel, nil
	}
}

func (p *ConsolePrompter) ShowMessage(title, message string, kind types.MessageKind) error {
	name := "Info"
	switch kind {
	case types.MessageWarning:
		name = "Warning"
	case types.MessageError:
		name = "Error"
	}
	p.header(name, title, message)
	return nil
}

var _ types.Prompter = (*ConsolePrompter)(nil)
