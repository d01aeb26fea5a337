// Package extract runs one installation: it opens the archive, prepares the
// native payload where the platform needs one, resolves the install
// directory and copies every eligible entry beneath it while reporting
// progress, resolving name conflicts and honoring cancellation.
//
// The engine never exits the process. Every outcome, including fatal
// errors, is returned as a Summary so the caller decides the exit status.
package extract
