// Package render draws the client's terminal surfaces: message bubbles,
// article bodies, and navigation chrome.
//
// # Overview
//
// Message text is split into Blocks before drawing. Chat messages use the
// "n) step" convention for numbered lists; article bodies are markdown and go
// through goldmark. Both produce the same Block values, so Bubble and Article
// share one layout path.
//
// Colors come from lipgloss and degrade to plain text when the output is not
// a terminal.
package render
