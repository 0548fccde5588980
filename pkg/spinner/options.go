package spinner

// Option is a function that sets an option on a MessageWriter.
type Option func(*MessageWriter)

// WithWriter sets the WriteFn on the MessageWriter.
func WithWriter(w WriteFn) Option {
	return func(m *MessageWriter) {
		m.printf = w
	}
}

// WithTTY controls whether ANSI control sequences are emitted.
func WithTTY(tty bool) Option {
	return func(m *MessageWriter) {
		m.tty = tty
	}
}
