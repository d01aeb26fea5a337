package genconfig

// Message constants
const (
	MsgShort   = "Generate a configuration file"
	MsgLong    = "Output the effective configuration to stdout, with every value commented out.\n\nWith -w the file is written to the user config location instead."
	MsgExample = `  selfunzip genconfig        # Output to stdout
  selfunzip genconfig -w     # Write to $XDG_CONFIG_HOME/selfunzip/config.toml`
	MsgWritten   = "Wrote %s\n"
	MsgErrExists = "%s already exists"
	MsgFlagWrite = "Write the config file instead of printing it"
	MsgFlagForce = "Overwrite an existing config file"
)
