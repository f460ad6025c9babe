package tasks

import (
	"strconv"

	"github.com/flowtask/ghlib/github"
)

// Kind discriminates the data items passed between tasks in a flow.
type Kind string

const (
	KindAuth              Kind = "gh.GitHubAuth"
	KindRepoRef           Kind = "gh.GitHubRepoRef"
	KindRepoInfo          Kind = "gh.GitHubRepoInfo"
	KindIssueRef          Kind = "gh.GitHubIssueRef"
	KindPullRef           Kind = "gh.GitHubPullRef"
	KindReviewRef         Kind = "gh.GitHubReviewRef"
	KindCommentRef        Kind = "gh.GitHubCommentRef"
	KindReleaseRef        Kind = "gh.GitHubReleaseRef"
	KindReleaseAssetRef   Kind = "gh.GitHubReleaseAssetRef"
	KindDiscussionRef     Kind = "gh.GitHubDiscussionRef"
	KindDiscussionComment Kind = "gh.GitHubDiscussionCommentRef"
	KindWorkflowRunRef    Kind = "gh.GitHubWorkflowRunRef"
	KindArtifactRef       Kind = "gh.GitHubArtifactRef"
	KindStatusRef         Kind = "gh.GitHubStatusRef"
	KindDeploymentRef     Kind = "gh.GitHubDeploymentRef"
	KindCheckRunRef       Kind = "gh.GitHubCheckRunRef"
	KindRequestMeta       Kind = "gh.GitHubRequestMeta"
)

// Item is one data item flowing between tasks. A task receiving an item may
// override any of its fields from explicit parameters; Placeholders exposes
// the fields an item contributes to that per-field resolution.
type Item interface {
	Kind() Kind
	Placeholders() map[string]string
}

// Auth carries the resolved credential for downstream calls.
type Auth struct {
	Credential github.Credential `json:"credential"`
}

func (Auth) Kind() Kind                      { return KindAuth }
func (Auth) Placeholders() map[string]string { return nil }

// RepoRef scopes downstream repo-level calls.
type RepoRef struct {
	Coordinate github.RepoCoordinate `json:"coordinate"`
}

func (RepoRef) Kind() Kind { return KindRepoRef }

func (r RepoRef) Placeholders() map[string]string {
	return map[string]string{
		"owner": r.Coordinate.Owner,
		"repo":  r.Coordinate.Repo,
	}
}

// RepoInfo is the projection of a fetched or created repository.
type RepoInfo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
}

func (RepoInfo) Kind() Kind                      { return KindRepoInfo }
func (RepoInfo) Placeholders() map[string]string { return nil }

// IssueRef identifies a previously created or fetched issue.
type IssueRef struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
	State   string `json:"state"`
}

func (IssueRef) Kind() Kind { return KindIssueRef }

func (r IssueRef) Placeholders() map[string]string {
	return map[string]string{
		"number":       itoa(r.Number),
		"issue_number": itoa(r.Number),
	}
}

// PullRef identifies a pull request.
type PullRef struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
	Head    string `json:"head"`
	Base    string `json:"base"`
	Merged  bool   `json:"merged"`
}

func (PullRef) Kind() Kind { return KindPullRef }

func (r PullRef) Placeholders() map[string]string {
	return map[string]string{
		"number":      itoa(r.Number),
		"pull_number": itoa(r.Number),
	}
}

// ReviewRef identifies a pull request review.
type ReviewRef struct {
	PullNumber int    `json:"pull_number"`
	ReviewID   int64  `json:"review_id"`
	State      string `json:"state"`
	HTMLURL    string `json:"html_url"`
}

func (ReviewRef) Kind() Kind { return KindReviewRef }

func (r ReviewRef) Placeholders() map[string]string {
	return map[string]string{
		"number":    itoa(r.PullNumber),
		"review_id": i64toa(r.ReviewID),
	}
}

// CommentRef identifies an issue or pull request comment.
type CommentRef struct {
	IssueNumber int    `json:"issue_number"`
	CommentID   int64  `json:"comment_id"`
	HTMLURL     string `json:"html_url"`
}

func (CommentRef) Kind() Kind { return KindCommentRef }

func (r CommentRef) Placeholders() map[string]string {
	return map[string]string{
		"issue_number": itoa(r.IssueNumber),
		"comment_id":   i64toa(r.CommentID),
	}
}

// ReleaseRef identifies a release. UploadURL is the asset-upload endpoint
// the server handed back, template suffix included.
type ReleaseRef struct {
	ReleaseID int64  `json:"release_id"`
	TagName   string `json:"tag_name"`
	HTMLURL   string `json:"html_url"`
	UploadURL string `json:"upload_url"`
}

func (ReleaseRef) Kind() Kind { return KindReleaseRef }

func (r ReleaseRef) Placeholders() map[string]string {
	return map[string]string{
		"release_id": i64toa(r.ReleaseID),
		"upload_url": r.UploadURL,
	}
}

// ReleaseAssetRef identifies an uploaded release asset.
type ReleaseAssetRef struct {
	AssetID     int64  `json:"asset_id"`
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

func (ReleaseAssetRef) Kind() Kind                      { return KindReleaseAssetRef }
func (ReleaseAssetRef) Placeholders() map[string]string { return nil }

// DiscussionRef identifies a discussion. The ID is the GraphQL node ID.
type DiscussionRef struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}

func (DiscussionRef) Kind() Kind { return KindDiscussionRef }

func (r DiscussionRef) Placeholders() map[string]string {
	return map[string]string{"discussion_id": r.ID}
}

// DiscussionCommentRef identifies a discussion comment by GraphQL node ID.
type DiscussionCommentRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (DiscussionCommentRef) Kind() Kind { return KindDiscussionComment }

func (r DiscussionCommentRef) Placeholders() map[string]string {
	return map[string]string{"comment_id": r.ID}
}

// WorkflowRunRef identifies an Actions workflow run.
type WorkflowRunRef struct {
	RunID      int64  `json:"run_id"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HTMLURL    string `json:"html_url"`
}

func (WorkflowRunRef) Kind() Kind { return KindWorkflowRunRef }

func (r WorkflowRunRef) Placeholders() map[string]string {
	return map[string]string{"run_id": i64toa(r.RunID)}
}

// ArtifactRef identifies an Actions artifact.
type ArtifactRef struct {
	ArtifactID int64  `json:"artifact_id"`
	Name       string `json:"name"`
	SizeBytes  int64  `json:"size_in_bytes"`
}

func (ArtifactRef) Kind() Kind { return KindArtifactRef }

func (r ArtifactRef) Placeholders() map[string]string {
	return map[string]string{"artifact_id": i64toa(r.ArtifactID)}
}

// StatusRef identifies a commit status.
type StatusRef struct {
	StatusID int64  `json:"status_id"`
	State    string `json:"state"`
	Context  string `json:"context"`
}

func (StatusRef) Kind() Kind                      { return KindStatusRef }
func (StatusRef) Placeholders() map[string]string { return nil }

// DeploymentRef identifies a deployment.
type DeploymentRef struct {
	DeploymentID int64  `json:"deployment_id"`
	Environment  string `json:"environment"`
}

func (DeploymentRef) Kind() Kind { return KindDeploymentRef }

func (r DeploymentRef) Placeholders() map[string]string {
	return map[string]string{"deployment_id": i64toa(r.DeploymentID)}
}

// CheckRunRef identifies a check run.
type CheckRunRef struct {
	CheckRunID int64  `json:"check_run_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	HTMLURL    string `json:"html_url"`
}

func (CheckRunRef) Kind() Kind { return KindCheckRunRef }

func (r CheckRunRef) Placeholders() map[string]string {
	return map[string]string{"check_run_id": i64toa(r.CheckRunID)}
}

// RequestMeta carries the observability headers of the last response for the
// raw request tasks.
type RequestMeta struct {
	Status             int    `json:"response_status"`
	ETag               string `json:"etag"`
	RateLimitRemaining int    `json:"rate_limit_remaining"`
	RateLimitReset     int64  `json:"rate_limit_reset"`
}

func (RequestMeta) Kind() Kind                      { return KindRequestMeta }
func (RequestMeta) Placeholders() map[string]string { return nil }

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func i64toa(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
