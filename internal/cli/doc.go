// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags, and an optional packfile, into the application's
// internal configuration. Explicit flags always win over packfile values.
package cli
