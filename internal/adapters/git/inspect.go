package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/courselab/lessonctl/internal/domain"
)

// Logger defines the logging interface for the git adapter.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// Inspector answers read-only questions about a repository through
// go-git: whether one exists at the working directory root and which
// configured remote belongs to a course organization.
type Inspector struct {
	dir          string
	upstreamOrgs []string
	logger       Logger
}

// NewInspector creates an Inspector for the given directory. upstreamOrgs
// are the organization names recognized as course upstreams, matched
// case-insensitively against remote URL owners.
func NewInspector(dir string, upstreamOrgs []string, log Logger) *Inspector {
	return &Inspector{
		dir:          dir,
		upstreamOrgs: upstreamOrgs,
		logger:       log,
	}
}

// EnsureRepo verifies a git repository exists at the directory root.
// Parent directories are not searched.
func (i *Inspector) EnsureRepo(_ context.Context) error {
	if _, err := gogit.PlainOpen(i.dir); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrNotARepo, i.dir)
	}
	return nil
}

// DetectUpstreamRemote returns the first configured remote whose URL
// owner matches a recognized course organization. Remotes with
// unparseable URLs are skipped.
func (i *Inspector) DetectUpstreamRemote(ctx context.Context) (domain.Remote, error) {
	repo, err := gogit.PlainOpen(i.dir)
	if err != nil {
		return domain.Remote{}, fmt.Errorf("%w: %s", domain.ErrNotARepo, i.dir)
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return domain.Remote{}, fmt.Errorf("failed to list remotes: %w", err)
	}

	for _, remote := range remotes {
		cfg := remote.Config()
		if len(cfg.URLs) == 0 {
			continue
		}
		url := cfg.URLs[0]

		owner, err := ownerFromURL(url)
		if err != nil {
			i.logger.Debug(ctx, "skipping remote with unrecognized URL", map[string]interface{}{
				"remote": cfg.Name,
				"url":    url,
			})
			continue
		}

		for _, org := range i.upstreamOrgs {
			if strings.EqualFold(owner, org) {
				i.logger.Debug(ctx, "found upstream remote", map[string]interface{}{
					"remote": cfg.Name,
					"owner":  owner,
				})
				return domain.Remote{Name: cfg.Name, URL: url}, nil
			}
		}
	}

	return domain.Remote{}, fmt.Errorf(
		"%w: checked %d remotes against %d organizations",
		domain.ErrNoUpstreamRemote,
		len(remotes),
		len(i.upstreamOrgs),
	)
}

// Regular expressions for parsing Git remote URLs.
var (
	// httpsURLPattern matches HTTPS URLs like:
	// https://github.com/owner/repo.git
	// https://github.com/owner/repo
	httpsURLPattern = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+?)(?:\.git)?$`)

	// sshURLPattern matches SSH URLs like:
	// git@github.com:owner/repo.git
	// git@github.com:owner/repo
	sshURLPattern = regexp.MustCompile(`^git@[^:]+:([^/]+)/([^/]+?)(?:\.git)?$`)
)

// ownerFromURL extracts the owner segment from a Git remote URL.
// Supports both HTTPS and SSH formats:
//   - https://github.com/owner/repo.git -> owner
//   - git@github.com:owner/repo.git -> owner
func ownerFromURL(url string) (string, error) {
	url = strings.TrimSpace(url)

	// Try HTTPS pattern first
	if matches := httpsURLPattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], nil
	}

	// Try SSH pattern
	if matches := sshURLPattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], nil
	}

	return "", fmt.Errorf("unrecognized URL format: %s", url)
}
