package domain

// Manifest is the loaded installer configuration.
type Manifest struct {
	// Source is the file the manifest was read from, or "<builtin>".
	Source    string
	Sequences []StepSequence
	Publish   *PublishTarget
}

// Sequence returns the sequence with the given name.
func (m *Manifest) Sequence(name string) (*StepSequence, bool) {
	for i := range m.Sequences {
		if m.Sequences[i].Name == name {
			return &m.Sequences[i], true
		}
	}
	return nil, false
}

// SequenceNames returns the declared sequence names in order.
func (m *Manifest) SequenceNames() []string {
	names := make([]string, len(m.Sequences))
	for i := range m.Sequences {
		names[i] = m.Sequences[i].Name
	}
	return names
}
