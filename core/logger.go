package core

// Logger is implemented by the application's logging services.
// args may carry errors, extra data maps and the acting Actor.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor identifies the operator on whose behalf an operation is running.
type Actor struct {
	ID   string
	Name string
}
