package ui

import "github.com/atotto/clipboard"

// writeClipboard is the production clipboard collaborator; tests swap the
// Model's copyText for a stub.
func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}
