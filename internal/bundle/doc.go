// Package bundle assembles the optional distribution archive: the promoted
// artifact tree at the archive root plus every resolvable third-party
// dependency under the deps/ namespace, written as one deflate-compressed
// zip file.
//
// Dependency resolution is best-effort convenience, not a correctness
// guarantee: a name that cannot be resolved against the configured
// site-packages roots is skipped with a warning.
package bundle
