package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
)

// ErrUnknownPipeline indicates that a pipeline's stage and job could not be resolved.
var ErrUnknownPipeline = errors.New("unknown pipeline")

// StageJob names the stage and job carrying a pipeline's test report.
type StageJob struct {
	Stage string `yaml:"stage" json:"stage"`
	Job   string `yaml:"job" json:"job"`
}

// Registry maps pipeline family names to their test stage and job.
type Registry map[string]StageJob

// Defaults returns the built-in registry of known pipelines.
func Defaults() Registry {
	return Registry{
		"dev-website-ci":  {Stage: "test", Job: "unit"},
		"dev-website-all": {Stage: "lengthy-tests", Job: "lengthy"},
	}
}

// Merge returns a new registry with entries from extra overlaid on r.
func (r Registry) Merge(extra map[string]StageJob) Registry {
	out := make(Registry, len(r)+len(extra))
	for name, entry := range r {
		out[name] = entry
	}
	for name, entry := range extra {
		out[name] = entry
	}
	return out
}

var familySuffix = regexp.MustCompile(`^(.+)-\d+$`)

// Family strips one trailing numeric segment from a pipeline name, so
// instanced pipelines like dev-website-ci-5 share the dev-website-ci entry.
func Family(pipeline string) string {
	if m := familySuffix.FindStringSubmatch(pipeline); m != nil {
		return m[1]
	}
	return pipeline
}

// Resolve determines the stage and job for a pipeline run. Explicit values
// win field by field; missing ones come from the registry entry for the
// pipeline's family.
func (r Registry) Resolve(pipeline, stage, job string) (string, string, error) {
	if entry, ok := r[Family(pipeline)]; ok {
		if stage == "" {
			stage = entry.Stage
		}
		if job == "" {
			job = entry.Job
		}
	}
	if stage == "" || job == "" {
		return "", "", fmt.Errorf("%w %q: run --show-pipelines to list known pipelines, or pass --stage and --job", ErrUnknownPipeline, pipeline)
	}
	return stage, job, nil
}

// Render writes the registry as indented JSON. Pipeline names sort
// lexicographically.
func (r Registry) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
