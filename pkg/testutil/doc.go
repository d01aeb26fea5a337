// Package testutil provides utilities for testing installer components.
//
// Key components:
//   - ZipBuilder: declarative archive fixtures written to a temp dir
//   - ScriptedPrompter: deterministic operator responses, records every prompt
//   - RecordingProgress: progress surface that records calls and can cancel
//     at a chosen entry
//
// Test doubles here never read stdin or touch a terminal.
package testutil
