package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{"full name", "golang/go", "golang", "go", false},
		{"https url", "https://github.com/kubernetes/kubernetes", "kubernetes", "kubernetes", false},
		{"https url with trailing path", "https://github.com/cli/cli/releases", "cli", "cli", false},
		{"https url with .git", "https://github.com/cli/cli.git", "cli", "cli", false},
		{"host without scheme", "github.com/spf13/cobra", "spf13", "cobra", false},
		{"scp remote", "git@github.com:sirupsen/logrus.git", "sirupsen", "logrus", false},
		{"dotted name", "owner/my.repo", "owner", "my.repo", false},
		{"empty", "  ", "", "", true},
		{"missing name", "golang", "", "", true},
		{"url without name", "https://github.com/golang", "", "", true},
		{"bad owner", "-bad/repo", "", "", true},
		{"bad name", "owner/re po", "", "", true},
		{"dot name", "owner/..", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := ParseRepository(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidInput(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
