package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/facturx-edit/internal/fileutils"
	"fjacquet/facturx-edit/internal/logging"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		fileutils.SetLogger(logger)
	}
}

const (
	originalFile = "original.pdf"
	workingFile  = "working.xml"
	verifyFile   = "verify.xml"
	stateFile    = "state.yaml"
)

// JobState is the collaborator-owned persisted state of one session:
// the selected attachment name, the lifecycle state, and the outputs
// produced so far. Serialized as YAML in the job directory.
type JobState struct {
	State             string    `yaml:"state"`
	AttachmentName    string    `yaml:"attachment_name"`
	ValidationWarning string    `yaml:"validation_warning,omitempty"`
	Outputs           []string  `yaml:"outputs,omitempty"`
	CreatedAt         time.Time `yaml:"created_at"`
}

// Store manages per-job working directories under a workspace root. Each
// job isolates one editing session; two jobs share no mutable state.
type Store struct {
	WorkDir string
}

// NewStore returns a store rooted at workDir, creating it if needed.
func NewStore(workDir string) (*Store, error) {
	if err := fileutils.EnsureDirectoryExists(workDir); err != nil {
		return nil, fmt.Errorf("error creating workspace directory: %w", err)
	}
	return &Store{WorkDir: workDir}, nil
}

// Job is a handle to one session's directory.
type Job struct {
	ID  string
	Dir string
}

// CreateJob allocates a fresh job directory with a random identifier.
func (s *Store) CreateJob() (Job, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.WorkDir, id)
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return Job{}, fmt.Errorf("error creating job directory: %w", err)
	}
	job := Job{ID: id, Dir: dir}
	if err := s.SaveState(job, &JobState{State: string(StateEmpty), CreatedAt: time.Now().UTC()}); err != nil {
		return Job{}, err
	}
	log.WithField(logging.FieldJob, id).Debug("Created job directory")
	return job, nil
}

// OpenJob returns the handle for an existing job id.
func (s *Store) OpenJob(id string) (Job, error) {
	dir := filepath.Join(s.WorkDir, id)
	if !fileutils.DirectoryExists(dir) {
		return Job{}, fmt.Errorf("unknown job: %s", id)
	}
	return Job{ID: id, Dir: dir}, nil
}

// LoadState reads the persisted job state.
func (s *Store) LoadState(job Job) (*JobState, error) {
	data, err := os.ReadFile(filepath.Join(job.Dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &JobState{State: string(StateEmpty)}, nil
		}
		return nil, fmt.Errorf("error reading job state: %w", err)
	}
	var st JobState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("error parsing job state: %w", err)
	}
	return &st, nil
}

// SaveState persists the job state as YAML.
func (s *Store) SaveState(job Job, st *JobState) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("error serializing job state: %w", err)
	}
	if err := fileutils.WriteFile(filepath.Join(job.Dir, stateFile), data, 0o600); err != nil {
		return fmt.Errorf("error writing job state: %w", err)
	}
	return nil
}

// OriginalPath returns the location of the uploaded container copy.
func (j Job) OriginalPath() string {
	return filepath.Join(j.Dir, originalFile)
}

// WorkingPath returns the location of the current working XML bytes.
func (j Job) WorkingPath() string {
	return filepath.Join(j.Dir, workingFile)
}

// VerifyPath returns the location of the post-build verification XML.
func (j Job) VerifyPath() string {
	return filepath.Join(j.Dir, verifyFile)
}

// OutputPath returns the location of a named build output inside the job.
func (j Job) OutputPath(name string) string {
	return filepath.Join(j.Dir, name)
}
