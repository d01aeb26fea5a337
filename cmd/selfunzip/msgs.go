package selfunzip

// Command descriptions
const (
	MsgRootShort = "Install the program packaged in this archive"
	MsgRootLong  = `selfunzip installs the program packaged in the archive it is appended to.

It proposes an install directory, creates a version-qualified directory
inside it and extracts every file of the archive there, asking before it
overwrites an existing file. Press Ctrl+C once to stop after the current
file; press it again to abort immediately.`

	MsgVersionShort   = "Print version information"
	MsgManShort       = "Generate the man page"
	MsgManLong        = "Write the selfunzip man page to stdout, or to a directory with --dir."
	MsgGenConfigShort = "Print the default configuration"
)

// Flag descriptions
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default is $XDG_CONFIG_HOME/selfunzip/config.toml)"
	MsgFlagArchive = "Archive to install instead of the running executable"
	MsgFlagFormat  = "Prompt style: auto, term or text (overrides ui.format)"
	MsgFlagManDir  = "Write one man page per command into this directory"
)

// Error messages
const (
	MsgErrLocateArchive = "cannot locate the installer archive"
	MsgErrLoadConfig    = "failed to load configuration"
)
