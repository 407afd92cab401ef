package gitremote

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/samber/lo"
)

const DefaultHost = "github.com"

const ErrInvalidIdentifier = errors.Sentinel("invalid repository identifier")

// Identifier is a resolved repository reference. Owner is the first path segment on the host and Repo holds the
// remaining segments, so nested GitLab groups end up in Repo.
type Identifier struct {
	Host         string
	Owner        string
	Repo         string
	CanonicalURL string
}

// PathSegments returns host, owner and the repo segments in order.
func (id *Identifier) PathSegments() []string {
	return append([]string{id.Host, id.Owner}, strings.Split(id.Repo, "/")...)
}

func (id *Identifier) String() string {
	return fmt.Sprintf("%s/%s/%s", id.Host, id.Owner, id.Repo)
}

type InvalidIdentifierError struct {
	Token  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidIdentifier, e.Token, e.Reason)
}

func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

func invalid(token string, reason string) error {
	return errors.WithStack(&InvalidIdentifierError{Token: token, Reason: reason})
}

type Resolver struct {
	// DefaultHost is used for owner/repo shorthands. Empty means github.com.
	DefaultHost string
}

// Resolve resolves token with the default github.com host.
func Resolve(token string) (*Identifier, error) {
	return Resolver{}.Resolve(token)
}

// Resolve accepts
//
//	owner/repo
//	host.tld/owner/repo
//	scheme://[user@]host[:port]/owner/repo[.git]
//	user@host:owner/repo[.git]
func (r Resolver) Resolve(token string) (*Identifier, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid(token, "empty identifier")
	}

	if strings.Contains(token, "://") {
		return resolveURL(token)
	}

	endpoint, err := transport.NewEndpoint(token)
	if err == nil && endpoint.Protocol == "ssh" {
		return resolveScpLike(token, endpoint)
	}

	return r.resolveShorthand(token)
}

func resolveURL(token string) (*Identifier, error) {
	endpoint, err := transport.NewEndpoint(token)
	if err != nil {
		return nil, invalid(token, err.Error())
	}
	if endpoint.Host == "" {
		return nil, invalid(token, "url has no host")
	}
	if strings.ContainsAny(token, "?#") {
		return nil, invalid(token, "query and fragment are not supported")
	}

	owner, repo, err := splitOwnerRepo(token, endpoint.Path)
	if err != nil {
		return nil, err
	}

	return &Identifier{
		Host:         strings.ToLower(endpoint.Host),
		Owner:        owner,
		Repo:         repo,
		CanonicalURL: trimRepoSuffix(token),
	}, nil
}

func resolveScpLike(token string, endpoint *transport.Endpoint) (*Identifier, error) {
	owner, repo, err := splitOwnerRepo(token, endpoint.Path)
	if err != nil {
		return nil, err
	}

	userInfo := ""
	if endpoint.User != "" {
		userInfo = endpoint.User + "@"
	}
	// The endpoint parser fills in port 22, keep the port only when the token spells one out.
	hostPort := endpoint.Host
	explicit := fmt.Sprintf("%s:%d", endpoint.Host, endpoint.Port)
	if strings.Contains(token, explicit+"/") || strings.Contains(token, explicit+":") {
		hostPort = explicit
	}

	return &Identifier{
		Host:         strings.ToLower(endpoint.Host),
		Owner:        owner,
		Repo:         repo,
		CanonicalURL: fmt.Sprintf("ssh://%s%s/%s/%s", userInfo, hostPort, owner, repo),
	}, nil
}

func (r Resolver) resolveShorthand(token string) (*Identifier, error) {
	host := r.DefaultHost
	if host == "" {
		host = DefaultHost
	}

	path := trimRepoSuffix(token)
	segments := strings.Split(path, "/")
	if len(segments) >= 3 && strings.Contains(segments[0], ".") {
		if !isHostName(segments[0]) {
			return nil, invalid(token, fmt.Sprintf("%q is not a host name", segments[0]))
		}
		host = segments[0]
		path = strings.Join(segments[1:], "/")
	}

	owner, repo, err := splitOwnerRepo(token, path)
	if err != nil {
		return nil, err
	}
	host = strings.ToLower(host)

	return &Identifier{
		Host:         host,
		Owner:        owner,
		Repo:         repo,
		CanonicalURL: fmt.Sprintf("https://%s/%s/%s", host, owner, repo),
	}, nil
}

// isHostName accepts dotted DNS names such as gitlab.freedesktop.org.
func isHostName(host string) bool {
	labels := strings.Split(host, ".")
	return len(labels) >= 2 && lo.EveryBy(labels, func(label string) bool {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		return strings.IndexFunc(label, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-')
		}) < 0
	})
}

func splitOwnerRepo(token string, path string) (string, string, error) {
	path = strings.Trim(trimRepoSuffix(path), "/")
	if path == "" {
		return "", "", invalid(token, "missing owner and repository")
	}

	segments := strings.Split(path, "/")
	if len(segments) < 2 {
		return "", "", invalid(token, "expected owner/repo")
	}
	if lo.ContainsBy(segments, func(segment string) bool {
		return segment == "" || segment == "." || segment == ".."
	}) {
		return "", "", invalid(token, "empty or relative path segment")
	}
	if lo.ContainsBy(segments, func(segment string) bool {
		return strings.ContainsRune(segment, '\\')
	}) {
		return "", "", invalid(token, "backslash in path")
	}

	return segments[0], strings.Join(segments[1:], "/"), nil
}

// trimRepoSuffix strips trailing slashes and a single .git suffix.
func trimRepoSuffix(s string) string {
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, ".git")
	return strings.TrimRight(s, "/")
}
