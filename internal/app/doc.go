// Package app encapsulates the application's dependencies, configuration,
// and lifecycle. It owns an isolated logger and format registry per instance
// and runs the build pipeline end to end: dependency analysis, staging,
// descriptor generation, toolchain invocation, artifact collection, and
// optional dependency bundling.
//
// The pipeline is strictly sequential; each stage completes before the next
// begins, and the first fatal error aborts the rest of the run.
package app
