package gitrepo

import (
	"path/filepath"
	"strings"

	"emperror.dev/errors"

	"pacl/internal/gitremote"
)

// CloneRequest is everything needed for a single git clone invocation.
type CloneRequest struct {
	Identifier  *gitremote.Identifier
	URL         string
	Destination string
	ExtraArgs   []string
}

// DestinationPath mirrors host/owner/repo below baseDir.
func DestinationPath(baseDir string, id *gitremote.Identifier) (string, error) {
	if baseDir == "" {
		return "", errors.New("base directory is empty")
	}
	if id == nil {
		return "", errors.New("no repository identifier")
	}

	projectPath := filepath.Join(append([]string{baseDir}, id.PathSegments()...)...)

	rel, err := filepath.Rel(baseDir, projectPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("destination for %s escapes base directory %s", id, baseDir)
	}
	return projectPath, nil
}

func NewCloneRequest(id *gitremote.Identifier, baseDir string, extraArgs []string) (*CloneRequest, error) {
	destination, err := DestinationPath(baseDir, id)
	if err != nil {
		return nil, err
	}

	return &CloneRequest{
		Identifier:  id,
		URL:         id.CanonicalURL,
		Destination: destination,
		ExtraArgs:   append([]string(nil), extraArgs...),
	}, nil
}

// Args are the git arguments: clone <url> <destination> followed by the passthrough flags untouched.
func (request *CloneRequest) Args() []string {
	args := make([]string, 0, 3+len(request.ExtraArgs))
	args = append(args, "clone", request.URL, request.Destination)
	return append(args, request.ExtraArgs...)
}
