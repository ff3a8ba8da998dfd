package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"interrupted", fmt.Errorf("view: %w", context.Canceled), 130},
		{"bad config", errs.Wrap(errs.ErrCodeInvalidConfig, errors.New("line 3"), "parse config.toml"), 2},
		{"network", errs.New(errs.ErrCodeNetwork, "GET /graph"), 1},
		{"plain", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
