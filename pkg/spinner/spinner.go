// Package spinner provides a simple progress spinner for the CLI.
package spinner

import (
	"fmt"
	"strings"
	"time"
)

var blocks = []string{"◐", "◓", "◑", "◒"}

// WriteFn is a function that writes a formatted string.
type WriteFn func(string, ...any) (int, error)

// MessageWriter implements io.Writer on top of a channel of strings.
type MessageWriter struct {
	ch     chan string
	end    chan struct{}
	err    bool
	tty    bool
	printf WriteFn
}

// Write implements io.Writer for the MessageWriter.
func (m *MessageWriter) Write(p []byte) (n int, err error) {
	str := string(p)
	for _, line := range strings.Split(str, "\n") {
		if len(line) == 0 {
			continue
		}
		m.ch <- line
	}
	return len(p), nil
}

// Infof sets the spinner message.
func (m *MessageWriter) Infof(format string, args ...interface{}) {
	m.ch <- fmt.Sprintf(format, args...)
}

// Closef closes the MessageWriter after writing a message.
func (m *MessageWriter) Closef(format string, args ...interface{}) {
	m.ch <- fmt.Sprintf(format, args...)
	m.Close()
}

// Close closes the MessageWriter inner channel.
func (m *MessageWriter) Close() {
	close(m.ch)
	<-m.end
}

// ErrorClosef closes the MessageWriter with a final error message.
func (m *MessageWriter) ErrorClosef(format string, args ...interface{}) {
	m.err = true
	m.ch <- fmt.Sprintf(format, args...)
	m.Close()
}

// loop keeps reading messages from the channel and printing them using the
// provided WriteFn. Exits when the channel is closed.
func (m *MessageWriter) loop() {
	var counter int
	var message string
	var ticker = time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	var end bool
	for {
		select {
		case msg, open := <-m.ch:
			if !open {
				end = true
			} else {
				message = msg
			}
		case <-ticker.C:
			counter++
		}
		if !m.tty {
			// no ANSI control sequences on non terminals, print the
			// final state only.
			if end {
				prefix := "✔"
				if m.err {
					prefix = "✗"
				}
				_, _ = m.printf("%s  %s\n", prefix, message)
				close(m.end)
				return
			}
			continue
		}
		pos := counter % len(blocks)
		if !end {
			_, _ = m.printf("\033[K\r%s  %s ", blocks[pos], message)
			continue
		}
		prefix := "✔"
		if m.err {
			prefix = "✗"
		}
		_, _ = m.printf("\033[K\r%s  %s\n", prefix, message)
		close(m.end)
		return
	}
}

// Start starts a progress spinner.
func Start(opts ...Option) *MessageWriter {
	mw := &MessageWriter{
		ch:     make(chan string, 1024),
		end:    make(chan struct{}),
		printf: fmt.Printf,
		tty:    true,
	}
	for _, opt := range opts {
		opt(mw)
	}
	go mw.loop()
	return mw
}
