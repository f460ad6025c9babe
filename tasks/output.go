package tasks

import (
	"encoding/json"
	"strconv"

	"github.com/flowtask/ghlib/github"
	"github.com/pkg/errors"
)

// buildOutput projects a call's outcome into the spec's item kind(s).
// resolved carries the call's target fields so mutation responses that omit
// an identifier (e.g. a merge response has no number) still yield a complete
// reference.
func buildOutput(spec Spec, outcome *github.Outcome, coord github.RepoCoordinate, resolved map[string]string) ([]Item, error) {
	var items []Item
	if spec.Output != "" {
		node, err := resultNode(spec, outcome.Body)
		if err != nil {
			return nil, err
		}
		if spec.List {
			elements, err := listElements(spec, node)
			if err != nil {
				return nil, err
			}
			for _, element := range elements {
				items = append(items, buildItem(spec.Output, element, coord, resolved))
			}
		} else {
			items = append(items, buildItem(spec.Output, node, coord, resolved))
		}
	}
	if spec.Output == "" {
		items = append(items, RequestMeta{
			Status:             outcome.Status,
			ETag:               outcome.ETag,
			RateLimitRemaining: outcome.RateLimitRemaining,
			RateLimitReset:     outcome.RateLimitReset,
		})
	}
	return items, nil
}

// resultNode walks ResultPath into the response body. With no path and a
// top-level array the raw array is handed through under an empty key.
func resultNode(spec Spec, body []byte) (map[string]interface{}, error) {
	if len(body) == 0 {
		return map[string]interface{}{}, nil
	}
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrap(err, "decoding response body")
	}
	if arr, ok := decoded.([]interface{}); ok {
		return map[string]interface{}{"": arr}, nil
	}
	node, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected response shape for %s", spec.Name)
	}
	for _, step := range spec.ResultPath {
		child, ok := node[step].(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("response for %s is missing %q", spec.Name, step)
		}
		node = child
	}
	return node, nil
}

func listElements(spec Spec, node map[string]interface{}) ([]map[string]interface{}, error) {
	raw, ok := node[spec.ListKey].([]interface{})
	if !ok {
		return nil, errors.Errorf("response for %s is missing list %q", spec.Name, spec.ListKey)
	}
	elements := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		if element, ok := entry.(map[string]interface{}); ok {
			elements = append(elements, element)
		}
	}
	return elements, nil
}

func buildItem(kind Kind, data map[string]interface{}, coord github.RepoCoordinate, resolved map[string]string) Item {
	switch kind {
	case KindIssueRef:
		return IssueRef{
			Owner:   coord.Owner,
			Repo:    coord.Repo,
			Number:  jintOr(data, "number", resolved["number"]),
			HTMLURL: jstr(data, "html_url"),
			State:   jstr(data, "state"),
		}
	case KindPullRef:
		return PullRef{
			Owner:   coord.Owner,
			Repo:    coord.Repo,
			Number:  jintOr(data, "number", resolved["number"]),
			HTMLURL: jstr(data, "html_url"),
			Head:    jnestedstr(data, "head", "ref"),
			Base:    jnestedstr(data, "base", "ref"),
			Merged:  jbool(data, "merged"),
		}
	case KindReviewRef:
		return ReviewRef{
			PullNumber: atoi(resolved["number"]),
			ReviewID:   jint64(data, "id"),
			State:      jstr(data, "state"),
			HTMLURL:    jstr(data, "html_url"),
		}
	case KindCommentRef:
		return CommentRef{
			IssueNumber: atoi(resolved["issue_number"]),
			CommentID:   jint64(data, "id"),
			HTMLURL:     jstr(data, "html_url"),
		}
	case KindRepoInfo:
		return RepoInfo{
			Name:          jstr(data, "name"),
			FullName:      jstr(data, "full_name"),
			Private:       jbool(data, "private"),
			HTMLURL:       jstr(data, "html_url"),
			DefaultBranch: jstr(data, "default_branch"),
		}
	case KindReleaseRef:
		return ReleaseRef{
			ReleaseID: jint64(data, "id"),
			TagName:   jstr(data, "tag_name"),
			HTMLURL:   jstr(data, "html_url"),
			UploadURL: jstr(data, "upload_url"),
		}
	case KindReleaseAssetRef:
		return ReleaseAssetRef{
			AssetID:     jint64(data, "id"),
			Name:        jstr(data, "name"),
			DownloadURL: jstr(data, "browser_download_url"),
		}
	case KindDiscussionRef:
		return DiscussionRef{
			ID:     jstr(data, "id"),
			Number: jint(data, "number"),
			URL:    jstr(data, "url"),
		}
	case KindDiscussionComment:
		return DiscussionCommentRef{
			ID:  jstr(data, "id"),
			URL: jstr(data, "url"),
		}
	case KindWorkflowRunRef:
		return WorkflowRunRef{
			RunID:      jint64Or(data, "id", resolved["run_id"]),
			Status:     jstr(data, "status"),
			Conclusion: jstr(data, "conclusion"),
			HTMLURL:    jstr(data, "html_url"),
		}
	case KindArtifactRef:
		return ArtifactRef{
			ArtifactID: jint64(data, "id"),
			Name:       jstr(data, "name"),
			SizeBytes:  jint64(data, "size_in_bytes"),
		}
	case KindStatusRef:
		return StatusRef{
			StatusID: jint64(data, "id"),
			State:    jstr(data, "state"),
			Context:  jstr(data, "context"),
		}
	case KindDeploymentRef:
		return DeploymentRef{
			DeploymentID: jint64Or(data, "id", resolved["deployment_id"]),
			Environment:  jstr(data, "environment"),
		}
	case KindCheckRunRef:
		return CheckRunRef{
			CheckRunID: jint64Or(data, "id", resolved["check_run_id"]),
			Name:       jstr(data, "name"),
			Status:     jstr(data, "status"),
			HTMLURL:    jstr(data, "html_url"),
		}
	}
	return RequestMeta{}
}

func jstr(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func jnestedstr(m map[string]interface{}, key, nested string) string {
	child, _ := m[key].(map[string]interface{})
	return jstr(child, nested)
}

func jbool(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func jint(m map[string]interface{}, key string) int {
	switch t := m[key].(type) {
	case float64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

func jint64(m map[string]interface{}, key string) int64 {
	switch t := m[key].(type) {
	case float64:
		return int64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
	}
	return 0
}

func jintOr(m map[string]interface{}, key, fallback string) int {
	if n := jint(m, key); n != 0 {
		return n
	}
	return atoi(fallback)
}

func jint64Or(m map[string]interface{}, key, fallback string) int64 {
	if n := jint64(m, key); n != 0 {
		return n
	}
	return int64(atoi(fallback))
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
