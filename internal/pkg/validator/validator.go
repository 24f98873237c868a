package validator

// Validator validates tagged structs.
type Validator interface {
	// Validate returns nil when data satisfies its `validate` tags.
	Validate(data any) error
}
