package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v74/github"

	"oauthrelay/pkg/logging"
)

// GitHubOptions configures a GitHubStore.
type GitHubOptions struct {
	Owner string
	Repo  string
	Path  string

	// Branch to read from and commit to. Empty means the default branch.
	Branch string

	// Token is a personal access token or installation token with contents:write.
	Token string

	// BaseURL overrides the API root, e.g. https://ghe.example.com/api/v3/.
	BaseURL string

	CommitMessage string

	// HTTPClient is used for API calls (nil uses http.DefaultClient).
	HTTPClient *http.Client
}

// GitHubStore keeps the tenant mapping as a JSON document in a GitHub
// repository, using the blob SHA of the file as the revision marker.
//
// Set reads the document and its SHA, changes one key and writes a new
// version guarded by that SHA. If somebody else committed in between, GitHub
// rejects the write and Set returns ErrRevisionConflict. It does not retry.
//
// GitHub answers 404 both for a missing file and for a private repository the
// token cannot see. Both read as an empty mapping, so a token without access
// surfaces as unknown tenants rather than a store error.
type GitHubStore struct {
	client  *github.Client
	owner   string
	repo    string
	path    string
	branch  string
	message string
}

// NewGitHubStore creates a store backed by the contents API.
func NewGitHubStore(opts GitHubOptions) (*GitHubStore, error) {
	if opts.Owner == "" || opts.Repo == "" || opts.Path == "" {
		return nil, fmt.Errorf("github store requires owner, repo and path")
	}

	client := github.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		client.BaseURL = baseURL
	}

	message := opts.CommitMessage
	if message == "" {
		message = "Update " + opts.Path
	}

	return &GitHubStore{
		client:  client,
		owner:   opts.Owner,
		repo:    opts.Repo,
		path:    opts.Path,
		branch:  opts.Branch,
		message: message,
	}, nil
}

// Get retrieves the refresh token for tenantID.
func (s *GitHubStore) Get(ctx context.Context, tenantID string) (string, error) {
	tokens, _, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	token, ok := tokens[tenantID]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

// Set fetches the current document, sets tenantID and pushes a new version
// guarded by the fetched SHA.
func (s *GitHubStore) Set(ctx context.Context, tenantID, refreshToken string) error {
	tokens, sha, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	tokens[tenantID] = refreshToken
	if err := s.push(ctx, tokens, sha); err != nil {
		return err
	}
	logging.Info("TokenStore", "Stored refresh token for app=%s in github:%s/%s/%s", tenantID, s.owner, s.repo, s.path)
	return nil
}

// Snapshot returns the full mapping from the current document version.
func (s *GitHubStore) Snapshot(ctx context.Context) (map[string]string, error) {
	tokens, _, err := s.fetch(ctx)
	return tokens, err
}

// fetch returns the mapping and the blob SHA. A missing file yields an empty
// mapping and a nil SHA so the next push creates it.
func (s *GitHubStore) fetch(ctx context.Context) (map[string]string, *string, error) {
	var opts *github.RepositoryContentGetOptions
	if s.branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: s.branch}
	}

	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.path, opts)
	if err != nil {
		if statusCode(resp, err) == http.StatusNotFound {
			logging.Debug("TokenStore", "Token document %s/%s/%s does not exist yet", s.owner, s.repo, s.path)
			return make(map[string]string), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to fetch %s/%s/%s: %w", s.owner, s.repo, s.path, err)
	}
	if file == nil {
		return nil, nil, fmt.Errorf("%s/%s/%s is a directory, not a token document", s.owner, s.repo, s.path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s/%s/%s: %w", s.owner, s.repo, s.path, err)
	}
	tokens, err := decodeDocument([]byte(content))
	if err != nil {
		return nil, nil, fmt.Errorf("%s/%s/%s: %w", s.owner, s.repo, s.path, err)
	}
	return tokens, file.SHA, nil
}

func (s *GitHubStore) push(ctx context.Context, tokens map[string]string, sha *string) error {
	data, err := encodeDocument(tokens)
	if err != nil {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(s.message),
		Content: data,
		SHA:     sha,
	}
	if s.branch != "" {
		opts.Branch = github.Ptr(s.branch)
	}

	var resp *github.Response
	if sha == nil {
		_, resp, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, s.path, opts)
	} else {
		_, resp, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, s.path, opts)
	}
	if err != nil {
		switch statusCode(resp, err) {
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("failed to update %s/%s/%s: %w: %v", s.owner, s.repo, s.path, ErrRevisionConflict, err)
		}
		return fmt.Errorf("failed to update %s/%s/%s: %w", s.owner, s.repo, s.path, err)
	}
	return nil
}

func statusCode(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}
