// Package report provides output formatting for scan results.
//
// Three formats are supported:
//   - Simple: human-readable text for terminal display
//   - JSON: machine-readable output for tool integration
//   - Markdown: GitHub-flavored markdown for documentation and sharing
//
// Every writer consumes a model.ScanReport whose findings are already
// masked; this package never sees raw artifact text.
package report
