package fs

import "go.trai.ch/chargeup/internal/core/ports"

// NewPublisherWithAccess creates a Publisher with a fixed write-access probe.
func NewPublisherWithAccess(runner ports.CommandRunner, writable func(string) bool) *Publisher {
	p := NewPublisher(runner)
	p.writable = writable
	return p
}

// NewPublisherWithRename creates a Publisher with fixed write access and
// elevated mv flags.
func NewPublisherWithRename(runner ports.CommandRunner, writable func(string) bool, mvFlags ...string) *Publisher {
	p := NewPublisherWithAccess(runner, writable)
	p.mvFlags = mvFlags
	return p
}

// RenameFlags exposes the per-OS mv flags.
var RenameFlags = renameFlags

// NewProfileEditorWithHome creates a ProfileEditor resolving ~ to home.
func NewProfileEditorWithHome(home string) *ProfileEditor {
	return &ProfileEditor{homeDir: func() (string, error) { return home, nil }}
}

// Writable exposes the write-access probe.
var Writable = writable
