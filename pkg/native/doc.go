// Package native makes the installer's native helper library available
// before extraction starts.
//
// Setup copies the library out of the archive into a temp directory, points
// the override environment variable at it and asks a Loader to bind it.
// ResolveNativeLibrary is the ordered search used to find the library:
//
//  1. the directory named by the override variable
//  2. the platform library search path (PATH on Windows,
//     LD_LIBRARY_PATH / DYLD_LIBRARY_PATH elsewhere)
//  3. the program path (the executable's directory and SELFUNZIP_PROGRAM_PATH)
//  4. an embedded fallback materialized into the temp directory
//
// A strategy that finds nothing is a rejected candidate, not an error.
//
// Temp payloads are scoped: Payload.Release deletes them, and they are also
// registered with a CleanupRegistry so an interrupted process still removes
// them on the way out.
package native
