// Package assets handles embedded static assets. Things like writing them
// down to disk, returning them as parsed plans, etc.
package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed static/*
var staticfs embed.FS

// StarterPlan returns the contents of the embedded starter plan.
func StarterPlan() ([]byte, error) {
	data, err := staticfs.ReadFile("static/plan.yaml")
	if err != nil {
		return nil, fmt.Errorf("unable to read embedded plan: %w", err)
	}
	return data, nil
}

// MaterializeStarterPlan writes the embedded starter plan to dstpath. It
// refuses to overwrite an existing file.
func MaterializeStarterPlan(dstpath string) error {
	if _, err := os.Stat(dstpath); err == nil {
		return fmt.Errorf("%s already exists", dstpath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("unable to stat %s: %w", dstpath, err)
	}
	data, err := StarterPlan()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstpath), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(dstpath, data, 0644); err != nil {
		return fmt.Errorf("unable to write starter plan: %w", err)
	}
	return nil
}
