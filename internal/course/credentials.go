package course

import (
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	credentialService = "ea-course"
	githubTokenKey    = "github_pat"
)

// CredentialManager stores the GitHub Personal Access Token used for syncing
// private course content repositories in the OS credential store.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a new credential manager instance.
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{service: credentialService}
}

// StoreGitHubToken validates and saves a GitHub Personal Access Token.
func (cm *CredentialManager) StoreGitHubToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := validateTokenFormat(token); err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}
	if err := keyring.Set(cm.service, githubTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}
	return nil
}

// GetGitHubToken retrieves the stored token.
func (cm *CredentialManager) GetGitHubToken() (string, error) {
	token, err := keyring.Get(cm.service, githubTokenKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no GitHub token found - store one with 'ea-course token set'")
		}
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("stored token is empty - store a new one with 'ea-course token set'")
	}
	return token, nil
}

// DeleteGitHubToken removes the stored token. Missing tokens are not an error.
func (cm *CredentialManager) DeleteGitHubToken() error {
	err := keyring.Delete(cm.service, githubTokenKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// HasGitHubToken reports whether a token is stored without retrieving it.
func (cm *CredentialManager) HasGitHubToken() bool {
	_, err := keyring.Get(cm.service, githubTokenKey)
	return err == nil
}

// validateTokenFormat checks the token against known GitHub PAT prefixes.
// Classic PATs start with ghp_, fine-grained ones with github_pat_.
func validateTokenFormat(token string) error {
	token = strings.TrimSpace(token)

	if len(token) < 20 {
		return fmt.Errorf("token too short (minimum 20 characters)")
	}

	validPrefixes := []string{"ghp_", "github_pat_", "gho_", "ghu_", "ghs_"}
	for _, prefix := range validPrefixes {
		if strings.HasPrefix(token, prefix) {
			return nil
		}
	}
	return fmt.Errorf("token does not match expected GitHub PAT format (should start with ghp_ or github_pat_)")
}
