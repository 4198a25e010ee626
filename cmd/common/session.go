// Package common provides the session wiring shared by the subcommands.
package common

import (
	"fmt"

	"fjacquet/facturx-edit/cmd/root"
	"fjacquet/facturx-edit/internal/container"
	"fjacquet/facturx-edit/internal/session"
)

// sessionOptions builds the collaborator set from the loaded configuration.
func sessionOptions() session.Options {
	return session.Options{
		Container:    container.NewPDFContainer(root.Cfg.PDF.RelaxedValidation),
		FallbackName: root.Cfg.Attachment.FallbackName,
	}
}

// NewSession creates a fresh job in the workspace and attaches a session.
func NewSession() (*session.Session, error) {
	store, err := session.NewStore(root.WorkspaceDir())
	if err != nil {
		return nil, err
	}
	return session.Create(store, sessionOptions())
}

// OpenSession attaches a session to the job named by the --job flag.
func OpenSession() (*session.Session, error) {
	if root.SharedFlags.Job == "" {
		return nil, fmt.Errorf("missing --job: run 'facturx-edit extract' first and pass its job id")
	}
	store, err := session.NewStore(root.WorkspaceDir())
	if err != nil {
		return nil, err
	}
	job, err := store.OpenJob(root.SharedFlags.Job)
	if err != nil {
		return nil, err
	}
	return session.New(store, job, sessionOptions())
}
