package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel or a primitive constructor.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// withKind tags the model with the primitive that produced it.
func withKind(k Kind) ModelBuilderOption {
	return func(m *model) {
		m.kind = k
	}
}
