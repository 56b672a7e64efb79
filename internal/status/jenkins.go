package status

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bndr/gojenkins"
)

type Jenkins struct {
	client *gojenkins.Jenkins
}

func NewJenkins(baseUrl, user, token string) *Jenkins {
	hc := &http.Client{Timeout: 10 * time.Second}
	return &Jenkins{
		client: gojenkins.CreateJenkins(hc, baseUrl, user, token),
	}
}

// JobStatus returns the state and number of the last build of a job.
func (j *Jenkins) JobStatus(ctx context.Context, job string) (string, int64, error) {
	jb, err := j.client.GetJob(ctx, job)
	if err != nil {
		return "", 0, fmt.Errorf("unable to get job %s: %w", job, err)
	}
	return jobState(jb.Raw.Color), jb.Raw.LastBuild.Number, nil
}

func jobState(color string) string {
	if strings.HasSuffix(color, "_anime") {
		return "building"
	}
	switch color {
	case "blue", "green":
		return "ok"
	case "red":
		return "failed"
	case "yellow":
		return "unstable"
	case "aborted", "disabled", "notbuilt":
		return color
	}
	return "unknown"
}

type JenkinsSource struct {
	Jenkins *Jenkins
	Job     string
}

func (s JenkinsSource) Name() string {
	return s.Job
}

func (s JenkinsSource) Status(ctx context.Context) (string, error) {
	state, build, err := s.Jenkins.JobStatus(ctx, s.Job)
	if err != nil {
		return "", err
	}
	if build == 0 {
		return state, nil
	}
	return fmt.Sprintf("#%d %s", build, state), nil
}
