package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v32/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const MinRatePercentage = 20

var ErrRateLimited = errors.New("rate limiting safety margin has been hit")

// GitHub is a rate limit aware GitHub client shared by all GitHub sources.
type GitHub struct {
	client *github.Client
	mu     sync.Mutex
	rate   *github.Rate
}

func NewGitHub(token string) *GitHub {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}
	return &GitHub{client: github.NewClient(hc)}
}

// SetBaseURL points the client at another API endpoint, e.g. GitHub Enterprise.
func (g *GitHub) SetBaseURL(base string) error {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid GitHub URL: %w", err)
	}
	g.client.BaseURL = u
	return nil
}

func (g *GitHub) CheckRate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rate == nil || g.rate.Limit == 0 {
		log.Debug("No rate information yet.")
		return nil
	}
	if g.rate.Reset.Before(time.Now()) {
		log.Debug("Rate limit has reset.")
		return nil
	}

	percent := g.rate.Remaining * 100 / g.rate.Limit
	if percent > MinRatePercentage {
		return nil
	}
	return ErrRateLimited
}

// CombinedStatus returns the combined commit status of ref, e.g. "success" or "pending".
func (g *GitHub) CombinedStatus(ctx context.Context, owner, repo, ref string) (string, error) {
	if err := g.CheckRate(); err != nil {
		return "", err
	}

	status, res, err := g.client.Repositories.GetCombinedStatus(ctx, owner, repo, ref, nil)
	if res != nil {
		g.mu.Lock()
		g.rate = &res.Rate
		g.mu.Unlock()
	}
	if err != nil {
		return "", fmt.Errorf("unable to get status of %s/%s@%s: %w", owner, repo, ref, err)
	}
	return status.GetState(), nil
}

type GitHubSource struct {
	GitHub *GitHub
	Owner  string
	Repo   string
	Ref    string
}

func (s GitHubSource) Name() string {
	return s.Repo
}

func (s GitHubSource) Status(ctx context.Context) (string, error) {
	state, err := s.GitHub.CombinedStatus(ctx, s.Owner, s.Repo, s.Ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", s.Ref, state), nil
}
