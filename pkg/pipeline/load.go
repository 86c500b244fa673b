package pipeline

import (
	stderrors "errors"
	"io/fs"

	"github.com/oyalabs/flowcanvas/pkg/cache"
	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// Load reads and decodes the workflow document named by the options.
// It returns the workflow and the content hash of the document as loaded,
// which downstream stages use as their cache key base.
func Load(opts Options) (*workflow.Workflow, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	w, err := workflow.ReadFile(opts.Path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "workflow file not found: %s", opts.Path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to load workflow: %s", opts.Path)
	}

	data, err := workflow.ContentHash(w)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "failed to hash workflow")
	}
	return w, cache.Hash(data), nil
}
