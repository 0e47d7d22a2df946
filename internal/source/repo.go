// Package source fetches C++ source trees for batch transpilation.
package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/rs/zerolog/log"
)

// RepoService handles repository operations
type RepoService struct {
	baseDir string
	token   string
}

// NewRepoService creates a new repository service
func NewRepoService(baseDir, token string) *RepoService {
	return &RepoService{
		baseDir: baseDir,
		token:   token,
	}
}

// RepoInfo contains parsed repository information
type RepoInfo struct {
	Owner    string
	Name     string
	URL      string
	CloneURL string
	Branch   string
}

// CloneResult contains the result of a clone operation
type CloneResult struct {
	Path      string
	CommitSHA string
	Branch    string
}

// ParseRepoURL parses a GitHub URL and returns repo info
func ParseRepoURL(rawURL string) (*RepoInfo, error) {
	// Handle git@github.com:owner/repo.git format
	if strings.HasPrefix(rawURL, "git@") {
		parts := strings.Split(rawURL, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SSH URL format: %s", rawURL)
		}
		pathParts := strings.Split(strings.TrimSuffix(parts[1], ".git"), "/")
		if len(pathParts) != 2 {
			return nil, fmt.Errorf("invalid repo path: %s", parts[1])
		}
		return &RepoInfo{
			Owner:    pathParts[0],
			Name:     pathParts[1],
			URL:      rawURL,
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", pathParts[0], pathParts[1]),
			Branch:   "main",
		}, nil
	}

	// Parse HTTPS URL
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsed.Host != "github.com" {
		return nil, fmt.Errorf("only github.com URLs are supported, got: %s", parsed.Host)
	}

	pathParts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(pathParts) < 2 {
		return nil, fmt.Errorf("invalid repo path: %s", parsed.Path)
	}

	owner := pathParts[0]
	name := strings.TrimSuffix(pathParts[1], ".git")

	return &RepoInfo{
		Owner:    owner,
		Name:     name,
		URL:      rawURL,
		CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", owner, name),
		Branch:   "main",
	}, nil
}

// Clone clones a repository to local storage
func (s *RepoService) Clone(ctx context.Context, info *RepoInfo) (*CloneResult, error) {
	repoDir := filepath.Join(s.baseDir, info.Owner, info.Name)

	// Remove existing directory if it exists
	if _, err := os.Stat(repoDir); err == nil {
		log.Debug().Str("path", repoDir).Msg("removing existing repo directory")
		if err := os.RemoveAll(repoDir); err != nil {
			return nil, fmt.Errorf("failed to remove existing directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(repoDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	log.Info().
		Str("url", info.CloneURL).
		Str("path", repoDir).
		Msg("cloning repository")

	cloneOpts := &git.CloneOptions{
		URL:      info.CloneURL,
		Progress: nil,
		Depth:    1, // Shallow clone for faster download
	}

	if s.token != "" {
		cloneOpts.Auth = &http.BasicAuth{
			Username: "git", // Can be anything for token auth
			Password: s.token,
		}
	}

	if info.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(info.Branch)
		cloneOpts.SingleBranch = true
	}

	repo, err := git.PlainCloneContext(ctx, repoDir, false, cloneOpts)
	if err != nil {
		// If branch doesn't exist, try without specifying branch
		if strings.Contains(err.Error(), "reference not found") && info.Branch != "" {
			log.Debug().Str("branch", info.Branch).Msg("branch not found, trying default")
			cloneOpts.ReferenceName = ""
			cloneOpts.SingleBranch = false
			repo, err = git.PlainCloneContext(ctx, repoDir, false, cloneOpts)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to clone: %w", err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	result := &CloneResult{
		Path:      repoDir,
		CommitSHA: head.Hash().String(),
		Branch:    head.Name().Short(),
	}

	log.Info().
		Str("commit", result.CommitSHA[:8]).
		Str("branch", result.Branch).
		Msg("clone complete")

	return result, nil
}

// ListCppFiles walks a source tree and returns the C++ translation units
// matching include, minus exclude, as paths relative to root.
func ListCppFiles(root string, include, exclude []string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "build" || name == "third_party" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if matchesAny(relPath, exclude) {
			return nil
		}
		if matchesAny(relPath, include) {
			files = append(files, relPath)
		}
		return nil
	})

	return files, err
}

// matchesAny checks relPath against glob patterns. A "**/" prefix matches at
// any depth; otherwise patterns apply to the base name.
func matchesAny(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		p := pattern
		if strings.HasPrefix(p, "**/") {
			p = strings.TrimPrefix(p, "**/")
		}
		if strings.Contains(p, "/") {
			// Directory-scoped pattern: match any path segment.
			trimmed := strings.Trim(p, "*/")
			if trimmed != "" && strings.Contains(relPath, trimmed) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(p, base); matched {
			return true
		}
	}
	return false
}
