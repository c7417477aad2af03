package server

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/filetree"
	"github.com/dustin/go-humanize"
)

// Report collects the outcome of an Apply run plus the resulting tree.
type Report struct {
	Results     []Result
	Count       int
	Listing     string
	Fingerprint string // set by [FileTree.Apply]
}

// Failed returns the number of requests that did not succeed.
func (r *Report) Failed() int {
	n := 0
	for i := range r.Results {
		if !r.Results[i].OK() {
			n++
		}
	}
	return n
}

// String renders one line per request followed by the tree listing.
func (r *Report) String() string {
	var sb strings.Builder
	for i := range r.Results {
		sb.WriteString(r.Results[i].String())
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "--- %d node(s)", r.Count)
	if r.Fingerprint != "" {
		fmt.Fprintf(&sb, ", fingerprint %s", r.Fingerprint)
	}
	sb.WriteByte('\n')
	sb.WriteString(r.Listing)
	return sb.String()
}

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL %s: %v", r.Request, r.Err)
	}
	switch {
	case r.Stat != nil && r.Stat.IsFile:
		return fmt.Sprintf("ok   %s: file, %s", r.Request, humanize.IBytes(uint64(r.Stat.Size)))
	case r.Stat != nil:
		return fmt.Sprintf("ok   %s: directory", r.Request)
	case r.Request.Op == filetree.ReplaceOp:
		return fmt.Sprintf("ok   %s: replaced %s", r.Request, humanize.IBytes(uint64(r.Replaced)))
	}
	return fmt.Sprintf("ok   %s", r.Request)
}
