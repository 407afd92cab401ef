package terminalView

import (
	"pacl/internal/gitrepo"
)

type CloneViewModel struct {
	GitCommand string
	Request    *gitrepo.CloneRequest
}

func NewCloneViewModel(gitCommand string, request *gitrepo.CloneRequest) *CloneViewModel {
	return &CloneViewModel{
		GitCommand: gitCommand,
		Request:    request,
	}
}
