package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/matzehuels/eleitos/pkg/errors"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"cancelled", fmt.Errorf("run: %w", context.Canceled), 130, ""},
		{"coded", apperrors.New(apperrors.ErrCodeConfigMissing, "missing api key"), 1, "missing api key"},
		{"wrapped coded", fmt.Errorf("start: %w", apperrors.New(apperrors.ErrCodeConfigMissing, "bad config")), 1, "bad config"},
		{"plain", errors.New("boom"), 1, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := exitStatus(tt.err)
			if code != tt.wantCode || msg != tt.wantMsg {
				t.Errorf("exitStatus() = (%d, %q), want (%d, %q)", code, msg, tt.wantCode, tt.wantMsg)
			}
		})
	}
}
