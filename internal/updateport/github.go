package updateport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GitHubReleaseUpdater checks a GitHub repository's latest release tag
// against the running build's version. Apply is intentionally left
// unimplemented: swapping the running binary is a packaging concern this
// port does not take on.
type GitHubReleaseUpdater struct {
	Repo           string // "owner/name"
	CurrentVersion string
	Client         *http.Client
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckLatest queries the GitHub releases API for the newest published tag.
func (u *GitHubReleaseUpdater) CheckLatest(ctx context.Context) (string, bool, error) {
	client := u.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", u.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("updateport: github returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false, fmt.Errorf("updateport: decode release: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(u.CurrentVersion, "v")
	return latest, latest != "" && latest != current, nil
}

// Apply always fails: binary replacement is a packaging concern left to a
// real installer.
func (u *GitHubReleaseUpdater) Apply(ctx context.Context, version string) error {
	return fmt.Errorf("updateport: automatic install of %s is not supported by this build; download it from https://github.com/%s/releases/tag/v%s", version, u.Repo, version)
}
