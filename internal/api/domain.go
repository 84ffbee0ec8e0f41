package api

import (
	"github.com/promptrefine/promptrefine/internal/prompts"
	"github.com/promptrefine/promptrefine/internal/testruns"
	"github.com/promptrefine/promptrefine/internal/versions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts  prompts.System
	Versions versions.System
	TestRuns testruns.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptSys := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	versionSys := versions.New(
		runtime.Database.Connection(),
		promptSys,
		runtime.Logger,
	)

	testRunSys := testruns.New(
		runtime.Database.Connection(),
		promptSys,
		versionSys,
		runtime.Completions,
		runtime.Logger,
	)

	return &Domain{
		Prompts:  promptSys,
		Versions: versionSys,
		TestRuns: testRunSys,
	}
}
