// Package target holds the handle to the environment being provisioned.
// Every step and every artifact install receives one of these instead of
// reaching for ambient global state: the handle knows where binaries,
// logs and temporary files live and which extra environment variables
// provisioning commands must inherit.
package target

import (
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// DefaultDataDir is where groundwork keeps its state unless told otherwise.
const DefaultDataDir = "/var/lib/groundwork"

// Environment is the mutable target of a provisioning run. Base is the
// directory inside which all the other directories are created.
type Environment struct {
	Base string
	env  map[string]string
}

// NewEnvironment returns a new Environment rooted at base. An empty base
// falls back to DefaultDataDir.
func NewEnvironment(base string) *Environment {
	if base == "" {
		base = DefaultDataDir
	}
	return &Environment{Base: base, env: map[string]string{}}
}

// BinaryName returns the name of the running binary. We make sure the name
// does not contain invalid characters for a filename as users may have
// renamed the downloaded binary to something else.
func BinaryName() string {
	exe, err := os.Executable()
	if err != nil {
		logrus.Fatalf("unable to get executable path: %s", err)
	}
	return slug.Make(filepath.Base(exe))
}

// BinSubDir returns the path to the directory where artifact entry points
// are linked. This directory is prepended to the PATH of every step.
func (e *Environment) BinSubDir() string {
	path := filepath.Join(e.Base, "bin")
	if err := os.MkdirAll(path, 0755); err != nil {
		logrus.Fatalf("unable to create bin dir: %s", err)
	}
	return path
}

// LogsSubDir returns the path to the directory where run and step logs are
// stored.
func (e *Environment) LogsSubDir() string {
	path := filepath.Join(e.Base, "logs")
	if err := os.MkdirAll(path, 0755); err != nil {
		logrus.Fatalf("unable to create logs dir: %s", err)
	}
	return path
}

// PathToLog returns the full path to a log file. This function does not
// check if the file exists.
func (e *Environment) PathToLog(name string) string {
	return filepath.Join(e.LogsSubDir(), name)
}

// TmpSubDir returns the path to the directory where temporary files such as
// in-flight downloads are kept. Contents do not survive a run.
func (e *Environment) TmpSubDir() string {
	path := filepath.Join(e.Base, "tmp")
	if err := os.MkdirAll(path, 0755); err != nil {
		logrus.Fatalf("unable to create tmp dir: %s", err)
	}
	return path
}

// PathToBinary returns the full path to an entry point installed in the
// environment bin directory.
func (e *Environment) PathToBinary(name string) string {
	return filepath.Join(e.BinSubDir(), name)
}

// Setenv records an extra environment variable to be inherited by every
// provisioning step.
func (e *Environment) Setenv(key, value string) {
	if e.env == nil {
		e.env = map[string]string{}
	}
	e.env[key] = value
}

// Env returns the variables every step inherits on top of the process
// environment. PATH is always present and has the bin dir prepended so
// installed entry points win over preexisting binaries.
func (e *Environment) Env() map[string]string {
	merged := map[string]string{
		"PATH": e.BinSubDir() + string(os.PathListSeparator) + os.Getenv("PATH"),
	}
	for k, v := range e.env {
		merged[k] = v
	}
	return merged
}
