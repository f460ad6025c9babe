package tasks

import "net/http"

// Catalog maps task names to their endpoint descriptions. Every wrapper the
// library offers is one entry here; the Adapter is the only execution path.
var Catalog = map[string]Spec{
	"Auth": {Name: "Auth", Route: RouteLocal},
	"Repo": {Name: "Repo", Route: RouteLocal},

	"issues.Create": {
		Name: "issues.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/issues",
		Required: []string{"title"},
		Body:     []string{"title", "body", "labels", "assignees", "milestone"},
		Output:   KindIssueRef,
	},
	"issues.Update": {
		Name: "issues.Update", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}/issues/{number}",
		Body:   []string{"title", "body", "labels", "assignees", "state"},
		Output: KindIssueRef,
	},
	"issues.Close": {
		Name: "issues.Close", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}/issues/{number}",
		Fixed:  map[string]interface{}{"state": "closed"},
		Output: KindIssueRef,
	},
	"issues.comment.Create": {
		Name: "issues.comment.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/issues/{issue_number}/comments",
		Required: []string{"body"},
		Body:     []string{"body"},
		Output:   KindCommentRef,
	},

	"pulls.Create": {
		Name: "pulls.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/pulls",
		Required: []string{"title", "head", "base"},
		Body:     []string{"title", "head", "base", "body", "draft"},
		Output:   KindPullRef,
	},
	"pulls.Update": {
		Name: "pulls.Update", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}/pulls/{number}",
		Body:   []string{"title", "body", "state", "base"},
		Output: KindPullRef,
	},
	"pulls.Merge": {
		Name: "pulls.Merge", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPut, Path: "/repos/{owner}/{repo}/pulls/{number}/merge",
		Body:   []string{"commit_title", "commit_message", "merge_method"},
		Output: KindPullRef,
	},
	"pulls.review.Create": {
		Name: "pulls.review.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/pulls/{number}/reviews",
		Body:   []string{"body", "event", "comments"},
		Output: KindReviewRef,
	},

	"repos.Get": {
		Name: "repos.Get", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}",
		Output: KindRepoInfo,
	},
	"repos.Create": {
		Name: "repos.Create", Route: RouteREST,
		Method: http.MethodPost, Path: "/user/repos",
		Required: []string{"name"},
		Body:     []string{"name", "description", "private", "auto_init"},
		Output:   KindRepoInfo,
	},
	"repos.Update": {
		Name: "repos.Update", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}",
		Body:   []string{"description", "private", "default_branch", "homepage"},
		Output: KindRepoInfo,
	},
	"repos.List": {
		Name: "repos.List", Route: RouteREST,
		Method: http.MethodGet, Path: "/user/repos",
		QueryFields: []string{"visibility", "affiliation"},
		Output:      KindRepoInfo, List: true,
	},

	"contents.Get": {
		Name: "contents.Get", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/contents/{path}",
		QueryFields: []string{"ref"},
	},
	"contents.Put": {
		Name: "contents.Put", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPut, Path: "/repos/{owner}/{repo}/contents/{path}",
		Required: []string{"message"},
		Body:     []string{"message", "content", "branch", "sha", "committer"},
	},

	"statuses.Create": {
		Name: "statuses.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/statuses/{sha}",
		Required: []string{"state"},
		Body:     []string{"state", "target_url", "description", "context"},
		Output:   KindStatusRef,
	},

	"checks.Create": {
		Name: "checks.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/check-runs",
		Required: []string{"name", "head_sha"},
		Body:     []string{"name", "head_sha", "status", "conclusion", "details_url", "output"},
		Output:   KindCheckRunRef,
	},
	"checks.Update": {
		Name: "checks.Update", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}/check-runs/{check_run_id}",
		Body:   []string{"status", "conclusion", "details_url", "output"},
		Output: KindCheckRunRef,
	},

	"deployments.Create": {
		Name: "deployments.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/deployments",
		Required: []string{"ref"},
		Body:     []string{"ref", "environment", "description", "auto_merge", "required_contexts"},
		Output:   KindDeploymentRef,
	},
	"deployments.StatusCreate": {
		Name: "deployments.StatusCreate", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/deployments/{deployment_id}/statuses",
		Required: []string{"state"},
		Body:     []string{"state", "description", "environment_url", "log_url"},
		Output:   KindDeploymentRef,
	},

	"collaborators.Add": {
		Name: "collaborators.Add", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPut, Path: "/repos/{owner}/{repo}/collaborators/{username}",
		Body: []string{"permission"},
	},
	"collaborators.Remove": {
		Name: "collaborators.Remove", Route: RouteREST, RepoScoped: true,
		Method: http.MethodDelete, Path: "/repos/{owner}/{repo}/collaborators/{username}",
	},
	"collaborators.List": {
		Name: "collaborators.List", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/collaborators",
	},

	"teams.List": {
		Name: "teams.List", Route: RouteREST,
		Method: http.MethodGet, Path: "/orgs/{org}/teams",
	},
	"teams.AddMember": {
		Name: "teams.AddMember", Route: RouteREST,
		Method: http.MethodPut, Path: "/orgs/{org}/teams/{team_slug}/memberships/{username}",
		Body: []string{"role"},
	},
	"teams.RemoveMember": {
		Name: "teams.RemoveMember", Route: RouteREST,
		Method: http.MethodDelete, Path: "/orgs/{org}/teams/{team_slug}/memberships/{username}",
	},

	"actions.workflowrun.Get": {
		Name: "actions.workflowrun.Get", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/actions/runs/{run_id}",
		Output: KindWorkflowRunRef,
	},
	"actions.workflowrun.List": {
		Name: "actions.workflowrun.List", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/actions/runs",
		QueryFields: []string{"branch", "event", "status"},
		Output:      KindWorkflowRunRef, List: true, ListKey: "workflow_runs",
	},
	"actions.workflowrun.Cancel": {
		Name: "actions.workflowrun.Cancel", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/actions/runs/{run_id}/cancel",
		Output: KindWorkflowRunRef,
	},
	"actions.workflowrun.Rerun": {
		Name: "actions.workflowrun.Rerun", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/actions/runs/{run_id}/rerun",
		Output: KindWorkflowRunRef,
	},

	"actions.artifacts.List": {
		Name: "actions.artifacts.List", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/actions/artifacts",
		Output: KindArtifactRef, List: true, ListKey: "artifacts",
	},
	"actions.artifacts.Download": {
		Name: "actions.artifacts.Download", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/actions/artifacts/{artifact_id}/zip",
		Accept: "application/zip",
	},
	"actions.artifacts.Delete": {
		Name: "actions.artifacts.Delete", Route: RouteREST, RepoScoped: true,
		Method: http.MethodDelete, Path: "/repos/{owner}/{repo}/actions/artifacts/{artifact_id}",
	},

	"releases.Create": {
		Name: "releases.Create", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPost, Path: "/repos/{owner}/{repo}/releases",
		Required: []string{"tag_name"},
		Body:     []string{"tag_name", "name", "body", "draft", "prerelease"},
		Output:   KindReleaseRef,
	},
	"releases.Get": {
		Name: "releases.Get", Route: RouteREST, RepoScoped: true,
		Method: http.MethodGet, Path: "/repos/{owner}/{repo}/releases/tags/{tag_name}",
		Output: KindReleaseRef,
	},
	"releases.Update": {
		Name: "releases.Update", Route: RouteREST, RepoScoped: true,
		Method: http.MethodPatch, Path: "/repos/{owner}/{repo}/releases/{release_id}",
		Body:   []string{"tag_name", "name", "body", "draft", "prerelease"},
		Output: KindReleaseRef,
	},
	"releases.asset.Upload": {
		Name: "releases.asset.Upload", Route: RouteREST,
		Method: http.MethodPost, URLField: "upload_url",
		Required:    []string{"name"},
		QueryFields: []string{"name", "label"},
		RawBody:     "content",
		Output:      KindReleaseAssetRef,
	},

	"discussions.List": {
		Name: "discussions.List", Route: RouteGraphQL, RepoScoped: true,
		Query: discussionListQuery,
		Vars: map[string]string{
			"owner": "owner", "repo": "repo", "first": "first",
			"after": "after", "categoryId": "category_id",
		},
		Defaults:   map[string]interface{}{"first": 20},
		ResultPath: []string{"repository", "discussions"},
		Output:     KindDiscussionRef, List: true, ListKey: "nodes",
	},
	"discussions.Create": {
		Name: "discussions.Create", Route: RouteGraphQL,
		Query: discussionCreateMutation,
		Vars: map[string]string{
			"repositoryId": "repository_id", "categoryId": "category_id",
			"title": "title", "body": "body",
		},
		Required:   []string{"repository_id", "category_id", "title"},
		Defaults:   map[string]interface{}{"body": ""},
		ResultPath: []string{"createDiscussion", "discussion"},
		Output:     KindDiscussionRef,
	},
	"discussions.Edit": {
		Name: "discussions.Edit", Route: RouteGraphQL,
		Query: discussionUpdateMutation,
		Vars: map[string]string{
			"discussionId": "discussion_id", "title": "title", "body": "body",
		},
		Required:   []string{"discussion_id"},
		ResultPath: []string{"updateDiscussion", "discussion"},
		Output:     KindDiscussionRef,
	},
	"discussions.Delete": {
		Name: "discussions.Delete", Route: RouteGraphQL,
		Query:      discussionDeleteMutation,
		Vars:       map[string]string{"id": "discussion_id"},
		Required:   []string{"discussion_id"},
		ResultPath: []string{"deleteDiscussion", "discussion"},
		Output:     KindDiscussionRef,
	},
	"discussions.comment.Create": {
		Name: "discussions.comment.Create", Route: RouteGraphQL,
		Query: discussionCommentAddMutation,
		Vars: map[string]string{
			"discussionId": "discussion_id", "body": "body", "replyToId": "reply_to_id",
		},
		Required:   []string{"discussion_id", "body"},
		ResultPath: []string{"addDiscussionComment", "comment"},
		Output:     KindDiscussionComment,
	},
	"discussions.comment.Edit": {
		Name: "discussions.comment.Edit", Route: RouteGraphQL,
		Query:      discussionCommentUpdateMutation,
		Vars:       map[string]string{"id": "comment_id", "body": "body"},
		Required:   []string{"comment_id", "body"},
		ResultPath: []string{"updateDiscussionComment", "comment"},
		Output:     KindDiscussionComment,
	},

	"request.Rest": {
		Name: "request.Rest", Route: RouteREST, Dynamic: true,
		Required: []string{"path"},
	},
	"request.GraphQL": {
		Name: "request.GraphQL", Route: RouteGraphQL, Dynamic: true,
		Required: []string{"query"},
	},
}
