package types

import "time"

// InstallChoice is the operator's answer to the install directory question.
type InstallChoice int

const (
	InstallAccept InstallChoice = iota
	InstallChooseOther
	InstallCancel
)

func (c InstallChoice) String() string {
	switch c {
	case InstallAccept:
		return "accept"
	case InstallChooseOther:
		return "choose-other"
	case InstallCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ConflictChoice is the operator's answer to a file name conflict.
type ConflictChoice int

const (
	ConflictYes ConflictChoice = iota
	ConflictYesToAll
	ConflictNo
	ConflictCancel
)

func (c ConflictChoice) String() string {
	switch c {
	case ConflictYes:
		return "yes"
	case ConflictYesToAll:
		return "yes-to-all"
	case ConflictNo:
		return "no"
	case ConflictCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// MessageKind selects how a message is presented.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
)

// FileInfo is the metadata shown for each side of a conflict.
type FileInfo struct {
	Size    uint64
	ModTime time.Time
}

// ConflictPrompt describes one file name conflict.
type ConflictPrompt struct {
	FileName    string
	Destination string
	Existing    FileInfo
	Incoming    FileInfo
	// Message is the fully composed text shown to the operator.
	Message string
}

// Prompter is the synchronous operator interaction surface. Every method
// blocks until the operator answers.
type Prompter interface {
	// ConfirmInstall asks Accept / Choose-other / Cancel.
	ConfirmInstall(title, message string) (InstallChoice, error)

	// PickDirectory asks for a directory. ok is false when the operator
	// made no selection.
	PickDirectory(title, startDir string) (dir string, ok bool, err error)

	// ResolveConflict asks Yes / Yes-to-all / No / Cancel.
	ResolveConflict(title string, prompt ConflictPrompt) (ConflictChoice, error)

	// ShowMessage presents a title and message pair.
	ShowMessage(title, message string, kind MessageKind) error
}

// ProgressReporter receives extraction progress and can request cancellation.
type ProgressReporter interface {
	SetTotal(n int)
	Advance(i int, note string)
	IsCancelled() bool
	Close()
}
