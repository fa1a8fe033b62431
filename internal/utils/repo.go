package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
)

var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ParseRepository accepts "owner/name", an https GitHub URL or an scp-style
// git remote and returns the owner and name components.
func ParseRepository(input string) (owner, name string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", apperrors.NewValidationError("repository is required", nil)
	}

	switch {
	case strings.HasPrefix(input, "git@"):
		_, path, ok := strings.Cut(input, ":")
		if !ok {
			return "", "", invalidRepository(input)
		}
		return ParseFullName(path)
	case strings.Contains(input, "://"):
		return ParseRepoURL(input)
	case strings.HasPrefix(input, "github.com/"):
		return ParseRepoURL("https://" + input)
	default:
		return ParseFullName(input)
	}
}

// ParseRepoURL parses a GitHub repository URL into owner and name components
func ParseRepoURL(repoURL string) (owner, name string, err error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("invalid repository URL: %s", repoURL), err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", "", invalidRepository(repoURL)
	}
	return ParseFullName(parts[0] + "/" + parts[1])
}

// ParseFullName splits and validates "owner/name"
func ParseFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.Trim(fullName, "/"), "/")
	if !ok {
		return "", "", invalidRepository(fullName)
	}
	name = strings.TrimSuffix(name, ".git")
	if err := ValidateOwnerAndName(owner, name); err != nil {
		return "", "", err
	}
	return owner, name, nil
}

// ValidateOwnerAndName checks both components against GitHub's naming rules
func ValidateOwnerAndName(owner, name string) error {
	if !ownerPattern.MatchString(owner) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid repository owner: %q", owner), nil)
	}
	if !namePattern.MatchString(name) || name == "." || name == ".." {
		return apperrors.NewValidationError(fmt.Sprintf("invalid repository name: %q", name), nil)
	}
	return nil
}

func invalidRepository(input string) error {
	return apperrors.NewValidationError(fmt.Sprintf("invalid GitHub repository: %s", input), nil)
}
