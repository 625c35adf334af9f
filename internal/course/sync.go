package course

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"

	"eamcp/internal/logging"
	"eamcp/pkg/fileops"
)

// directoryStatus classifies the local content directory before a sync.
type directoryStatus int

const (
	// dirEmpty means the directory is missing or empty, safe to clone into.
	dirEmpty directoryStatus = iota
	// dirSameRepo means the directory already holds a clone of the content repo.
	dirSameRepo
	// dirDifferentRepo means a clone of some other repository is in the way.
	dirDifferentRepo
	// dirConflict means non-git content occupies the directory.
	dirConflict
)

func (ds directoryStatus) String() string {
	switch ds {
	case dirEmpty:
		return "empty or doesn't exist"
	case dirSameRepo:
		return "same git repository"
	case dirDifferentRepo:
		return "different git repository"
	case dirConflict:
		return "contains non-git content"
	default:
		return "unknown status"
	}
}

// ContentSource syncs the course content repository into the local cache.
// Public repositories need no credentials; private ones fall back to the
// GitHub Personal Access Token from the OS credential store.
type ContentSource struct {
	RemoteURL string
	Branch    string
	Path      string
}

// NewContentSource builds a ContentSource from the loaded config.
func NewContentSource(cfg *Config) (ContentSource, error) {
	if cfg == nil || strings.TrimSpace(cfg.ContentRepo) == "" {
		return ContentSource{}, fmt.Errorf("no content repository configured - set content_repo in %s", ConfigPath())
	}
	return ContentSource{
		RemoteURL: cfg.ContentRepo,
		Branch:    cfg.Branch,
		Path:      cfg.ContentDir,
	}, nil
}

// Sync clones the content repository on first run and fetches updates on
// subsequent runs. It returns the local content path.
func (cs ContentSource) Sync(logger *logging.AppLogger) (string, error) {
	if logger == nil {
		logger = logging.GetDefault()
	}

	normalizedURL, err := cs.normalizeRemoteURL()
	if err != nil {
		return "", fmt.Errorf("invalid content repository URL: %w", err)
	}

	cleanPath, err := cs.validateLocalPath()
	if err != nil {
		return "", err
	}

	status, err := cs.classifyDirectory(cleanPath, normalizedURL)
	if err != nil {
		return "", err
	}

	switch status {
	case dirEmpty:
		if err := cs.cloneWithAuth(cleanPath, normalizedURL, logger); err != nil {
			return "", err
		}
	case dirSameRepo:
		if err := cs.fetchWithAuth(cleanPath, logger); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("content directory conflict at %s (%s): remove or relocate the existing directory", cleanPath, status)
	}

	logger.Info("course content synced", "path", cleanPath)
	return cleanPath, nil
}

func (cs ContentSource) validateLocalPath() (string, error) {
	clean := filepath.Clean(fileops.ExpandPath(cs.Path))
	if err := fileops.ValidatePathSecurity(clean); err != nil {
		return "", fmt.Errorf("invalid content path: %w", err)
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}
	return abs, nil
}

// normalizeRemoteURL converts SSH URLs to HTTPS and appends .git for
// consistency with how the clone was originally written.
func (cs ContentSource) normalizeRemoteURL() (string, error) {
	info, err := ParseGitURL(cs.RemoteURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s/%s/%s.git", info.Host, info.Owner, info.Repo), nil
}

func (cs ContentSource) classifyDirectory(clonePath, expectedURL string) (directoryStatus, error) {
	info, err := os.Stat(clonePath)
	if os.IsNotExist(err) {
		return dirEmpty, nil
	}
	if err != nil {
		return dirConflict, fmt.Errorf("cannot access directory %s: %w", clonePath, err)
	}
	if !info.IsDir() {
		return dirConflict, fmt.Errorf("path exists but is not a directory: %s", clonePath)
	}

	empty, err := fileops.IsDirEmpty(clonePath)
	if err != nil {
		return dirConflict, fmt.Errorf("cannot inspect directory: %w", err)
	}
	if empty {
		return dirEmpty, nil
	}

	repo, err := git.PlainOpen(clonePath)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return dirConflict, nil
		}
		return dirConflict, fmt.Errorf("cannot open git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return dirConflict, fmt.Errorf("cannot get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return dirConflict, fmt.Errorf("no URLs configured for origin remote")
	}

	if normalizeGitURL(urls[0]) == normalizeGitURL(expectedURL) {
		return dirSameRepo, nil
	}
	return dirDifferentRepo, nil
}

// cloneWithAuth tries an anonymous clone first and retries with the stored
// PAT only when the failure looks like an authentication error.
func (cs ContentSource) cloneWithAuth(localPath, remoteURL string, logger *logging.AppLogger) error {
	err := cs.clone(localPath, remoteURL, nil, logger)
	if err == nil {
		return nil
	}

	if isAuthenticationError(err) {
		logger.Debug("public clone failed, retrying with authentication")
		auth, authErr := cs.authentication(logger)
		if authErr != nil {
			return fmt.Errorf("GitHub authentication failed: %w", authErr)
		}
		if auth == nil {
			return fmt.Errorf("GitHub authentication required - store a Personal Access Token with 'ea-course token set'")
		}
		return cs.clone(localPath, remoteURL, auth, logger)
	}

	return err
}

func (cs ContentSource) clone(localPath, remoteURL string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	logger.Debug("cloning content repository", "url", remoteURL, "path", localPath)

	parentDir := filepath.Dir(localPath)
	if err := fileops.ValidatePathSecurity(parentDir); err != nil {
		return fmt.Errorf("parent directory failed security validation: %w", err)
	}
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	opts := &git.CloneOptions{
		URL:   remoteURL,
		Depth: 1,
	}
	if auth != nil {
		opts.Auth = auth
	}
	if cs.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(cs.Branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainClone(localPath, opts); err != nil {
		return translateSyncError(err, cs.RemoteURL)
	}
	return nil
}

func (cs ContentSource) fetchWithAuth(localPath string, logger *logging.AppLogger) error {
	err := cs.fetch(localPath, nil, logger)
	if err == nil {
		return nil
	}

	if isAuthenticationError(err) {
		logger.Debug("public fetch failed, retrying with authentication")
		auth, authErr := cs.authentication(logger)
		if authErr != nil {
			return fmt.Errorf("GitHub authentication failed: %w", authErr)
		}
		if auth == nil {
			return fmt.Errorf("GitHub authentication required - store a Personal Access Token with 'ea-course token set'")
		}
		return cs.fetch(localPath, auth, logger)
	}

	return err
}

// fetch updates an existing clone. A dirty working tree skips the sync so
// local edits to course content are never discarded.
func (cs ContentSource) fetch(localPath string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("failed to open existing repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get working tree status: %w", err)
	}
	if !status.IsClean() {
		logger.Warn("content directory has local changes, skipping sync")
		return nil
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get origin remote: %w", err)
	}

	err = remote.Fetch(&git.FetchOptions{Auth: auth, Force: true})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return translateSyncError(err, cs.RemoteURL)
	}

	// Reset to the remote head for a clean cache-style sync.
	branch := cs.Branch
	if branch == "" {
		head, err := repo.Head()
		if err != nil {
			return fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		branch = head.Name().Short()
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return fmt.Errorf("branch %q does not exist on remote 'origin'", branch)
	}
	if err := worktree.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to update working tree: %w", err)
	}

	logger.Debug("content repository updated", "branch", branch)
	return nil
}

func (cs ContentSource) authentication(logger *logging.AppLogger) (*http.BasicAuth, error) {
	credMgr := NewCredentialManager()
	if !credMgr.HasGitHubToken() {
		return nil, nil
	}

	token, err := credMgr.GetGitHubToken()
	if err != nil {
		return nil, err
	}

	logger.Debug("using stored GitHub token for authentication")
	return &http.BasicAuth{Username: "token", Password: token}, nil
}

func isAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"authentication required", "401", "unauthorized", "403", "forbidden"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// translateSyncError turns common Git failures into actionable messages.
func translateSyncError(err error, remoteURL string) error {
	msg := strings.ToLower(err.Error())

	if isAuthenticationError(err) {
		if strings.Contains(msg, "403") || strings.Contains(msg, "forbidden") {
			return fmt.Errorf("GitHub token lacks required permissions - ensure 'repo' scope is enabled")
		}
		return fmt.Errorf("GitHub authentication failed - update your token with 'ea-course token set'")
	}
	if strings.Contains(msg, "404") || strings.Contains(msg, "not found") {
		return fmt.Errorf("repository not found - check the URL or ensure you have access: %s", remoteURL)
	}
	if strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("network error during sync - check your connection and try again: %w", err)
	}
	return fmt.Errorf("failed to sync content repository: %w", err)
}

// GitURLInfo contains the parsed components of a Git repository URL.
type GitURLInfo struct {
	Host  string
	Owner string
	Repo  string
}

var sshURLPattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)

// ParseGitURL parses an SSH (git@host:owner/repo.git) or HTTPS
// (https://host/owner/repo.git) Git URL into its components.
func ParseGitURL(gitURL string) (GitURLInfo, error) {
	gitURL = strings.TrimSpace(gitURL)
	if gitURL == "" {
		return GitURLInfo{}, fmt.Errorf("URL cannot be empty")
	}

	if matches := sshURLPattern.FindStringSubmatch(gitURL); matches != nil {
		return GitURLInfo{Host: matches[1], Owner: matches[2], Repo: matches[3]}, nil
	}

	parsed, err := url.Parse(gitURL)
	if err != nil {
		return GitURLInfo{}, fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Host == "" {
		return GitURLInfo{}, fmt.Errorf("URL missing host component")
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 {
		return GitURLInfo{}, fmt.Errorf("URL path should contain owner/repo: %s", parsed.Path)
	}

	owner := parts[0]
	repo := strings.TrimSuffix(parts[1], ".git")
	if owner == "" || repo == "" {
		return GitURLInfo{}, fmt.Errorf("could not extract owner/repo from URL path: %s", parsed.Path)
	}

	return GitURLInfo{Host: parsed.Host, Owner: owner, Repo: repo}, nil
}

// normalizeGitURL maps SSH and HTTPS forms of the same repository to a single
// comparable string.
func normalizeGitURL(gitURL string) string {
	gitURL = strings.TrimSuffix(strings.TrimSpace(gitURL), ".git")

	if matches := regexp.MustCompile(`^git@([^:]+):(.+)$`).FindStringSubmatch(gitURL); matches != nil {
		return matches[1] + "/" + matches[2]
	}
	if after, found := strings.CutPrefix(gitURL, "https://"); found {
		return after
	}
	if after, found := strings.CutPrefix(gitURL, "http://"); found {
		return after
	}
	return gitURL
}
