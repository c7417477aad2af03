package server

import (
	"context"
	"fmt"

	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/filesystem"
	"github.com/brettbedarf/filetree/internal/util"
)

// Result is the outcome of one request. Stat is set for successful stat
// requests and Replaced holds the previous size for successful replaces.
type Result struct {
	Request  *filetree.Request
	Err      error
	Stat     *filesystem.StatInfo
	Replaced int
}

func (r *Result) OK() bool {
	return r.Err == nil
}

// Apply runs reqs in order against t and collects one Result per request. A
// failed request is recorded and the run continues; a failed request leaves
// the tree unchanged. With check set the invariant checker runs after every
// mutation and a violation is recorded as that request's error.
//
// Cancelling ctx stops the run; requests not yet run get ctx's error.
func Apply(ctx context.Context, t filetree.TreeOperator, reqs []*filetree.Request, check bool) *Report {
	logger := util.GetLogger("Apply")
	report := &Report{Results: make([]Result, 0, len(reqs))}

	for _, req := range reqs {
		res := Result{Request: req}
		if err := ctx.Err(); err != nil {
			res.Err = err
			report.Results = append(report.Results, res)
			continue
		}
		applyOne(ctx, t, &res)
		if check && res.Err == nil && req.IsMutation() {
			if err := t.Check(); err != nil {
				res.Err = err
			}
		}
		if res.Err != nil {
			logger.Debug().Err(res.Err).Str("request", req.String()).Msg("Request failed")
		}
		report.Results = append(report.Results, res)
	}

	report.Count = t.Count()
	report.Listing = t.String()
	logger.Info().Int("requests", len(reqs)).Int("failed", report.Failed()).Int("nodes", report.Count).Msg("Requests applied")
	return report
}

func applyOne(ctx context.Context, t filetree.TreeOperator, res *Result) {
	req := res.Request
	switch req.Op {
	case filetree.MkdirOp:
		res.Err = t.InsertDir(req.Path)
	case filetree.CreateOp:
		var contents []byte
		if len(req.Sources) > 0 {
			data, err := filetree.ResolveContents(ctx, req.Sources)
			if err != nil {
				res.Err = err
				return
			}
			contents = data
		}
		res.Err = t.InsertFile(req.Path, contents)
	case filetree.RmdirOp:
		res.Err = t.RemoveDir(req.Path)
	case filetree.RmOp:
		res.Err = t.RemoveFile(req.Path)
	case filetree.StatOp:
		info, err := t.Stat(req.Path)
		if err != nil {
			res.Err = err
			return
		}
		res.Stat = &info
	case filetree.ReplaceOp:
		// resolve the target first so lookup failures keep their own kind
		info, err := t.Stat(req.Path)
		if err != nil {
			res.Err = err
			return
		}
		if !info.IsFile {
			res.Err = fmt.Errorf("%w: %s", filesystem.ErrNotAFile, req.Path)
			return
		}
		data, err := filetree.ResolveContents(ctx, req.Sources)
		if err != nil {
			res.Err = err
			return
		}
		old, ok := t.ReplaceContents(req.Path, data)
		if !ok {
			res.Err = fmt.Errorf("%w: %s", filesystem.ErrNotAFile, req.Path)
			return
		}
		res.Replaced = len(old)
	default:
		res.Err = req.Validate()
	}
}
