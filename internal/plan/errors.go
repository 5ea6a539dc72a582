package plan

import "fmt"

// ConfigurationError reports an invalid mapping attribute. It is detected
// at generation time; no code is produced for a plan holding one.
type ConfigurationError struct {
	// Model is the Go type name.
	Model string
	// Attribute is the offending attribute: "table", "check", a field
	// name, or empty for the type itself.
	Attribute string
	// Code identifies the kind of problem.
	Code    string
	Message string
	// Hint suggests a fix, if one is known.
	Hint string
}

func (e *ConfigurationError) Error() string {
	msg := e.Model
	if e.Attribute != "" {
		msg += "." + e.Attribute
	}

	msg += ": " + e.Message
	if e.Hint != "" {
		msg += fmt.Sprintf(" (hint: %s)", e.Hint)
	}

	return msg
}
