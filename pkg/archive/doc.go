// Package archive reads the deflate-based archive an installer carries.
//
// A Reader is one open handle. Entries are enumerated once per handle with
// Next, which returns io.EOF when the listing is exhausted. Content streams
// are opened per entry and are independent of each other and of any other
// Reader, so closing one handle mid-read never disturbs another.
//
// The archive may be a plain zip file or an executable with a zip appended,
// which is how a self-extracting installer is normally shipped.
package archive
