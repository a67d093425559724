// Package changelog provides parsing, validation and release management for
// changelogs written in the Keep a Changelog Markdown dialect.
//
// This package implements:
//   - Heading and link-reference scanning of CHANGELOG.md text
//   - A document model of header, versions, sections and list items
//   - Rule-based validation with line and column diagnostics
//   - Adding entries, cutting releases and generating comparison links
//   - Serialization back to Markdown, byte-stable across round trips
//
// A Document is not safe for concurrent mutation. Callers sharing one across
// goroutines must synchronize access themselves.
package changelog
