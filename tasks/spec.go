package tasks

import "regexp"

// Route selects which executor a task goes through. Discussions route
// through GraphQL exclusively; the underlying API has no REST equivalent.
type Route string

const (
	RouteREST    Route = "rest"
	RouteGraphQL Route = "graphql"
	// RouteLocal tasks produce items without a network call (auth and repo
	// coordinate producers).
	RouteLocal Route = "local"
)

// Spec is the declarative description of one endpoint wrapper. Every task is
// a Spec consumed by the one generic Adapter execution path; there are no
// per-endpoint code paths.
type Spec struct {
	Name  string
	Route Route

	// REST route.
	Method   string
	Path     string // path template, fields in braces
	URLField string // field carrying a full URL that replaces Path (asset uploads)

	// GraphQL route.
	Query      string
	Vars       map[string]string // GraphQL variable name -> field name
	ResultPath []string          // walk from the data object to the result node

	Required    []string               // fields that must resolve from params or inbound items
	Body        []string               // params copied into the JSON body when present
	Fixed       map[string]interface{} // body fields the endpoint pins (e.g. state: closed)
	Defaults    map[string]interface{} // variable defaults when nothing resolves
	QueryFields []string               // fields appended as URL query parameters when present
	RawBody     string                 // param carrying an opaque byte payload
	Accept      string                 // non-default Accept header (binary downloads)
	Dynamic     bool                   // escape hatch: method/path or query come from params

	Output     Kind   // item kind projected from the response, "" for RequestMeta only
	List       bool   // response node is an array; one item per element
	ListKey    string // key holding the array, "" when the node is the array
	RepoScoped bool   // requires owner/repo coordinates
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// placeholders lists the fields the path template needs.
func (s Spec) placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(s.Path, -1)
	fields := make([]string, 0, len(matches))
	for _, m := range matches {
		fields = append(fields, m[1])
	}
	return fields
}
