package model

import (
	"fmt"
	"os"
	"strings"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

const (
	PrecisionEnv = "OVPREP_PRECISION"

	SplitorWorkspace = "/"
	SplitorPrecision = "@"
)

// Reference addresses a model as [workspace/]model[@precision]. Workspace
// stays empty when the reference omitted it, so callers can tell "not given"
// from an explicitly typed "default/".
type Reference struct {
	Workspace string
	Model     string
	Precision string
}

func (r Reference) String() string {
	s := r.Model
	if r.Workspace != "" && r.Workspace != workspace.DefaultWorkspaceName {
		s = r.Workspace + SplitorWorkspace + s
	}
	if r.Precision != "" {
		s += SplitorPrecision + r.Precision
	}
	return s
}

// Open resolves the referenced workspace via the workspace registry. An
// omitted workspace resolves as the default one.
func (r Reference) Open() (*workspace.Workspace, error) {
	name := r.Workspace
	if name == "" {
		name = workspace.DefaultWorkspaceName
	}
	details, err := workspace.DefaultManager.Get(name)
	if err != nil {
		return nil, err
	}
	return details.Open()
}

// ResolvePrecision picks the effective precision: reference, then
// OVPREP_PRECISION, then the workspace default.
func (r Reference) ResolvePrecision(ws *workspace.Workspace) string {
	if r.Precision != "" {
		return r.Precision
	}
	if env := os.Getenv(PrecisionEnv); env != "" {
		return env
	}
	return ws.DefaultPrecision()
}

func ParseReference(raw string) (Reference, error) {
	if raw == "" {
		return Reference{}, fmt.Errorf("empty reference")
	}

	rest, precision := raw, ""
	if splits := strings.SplitN(raw, SplitorPrecision, 2); len(splits) == 2 {
		rest, precision = splits[0], splits[1]
		if !omz.IsPrecision(precision) {
			return Reference{}, apierr.NewPrecisionInvalidError(precision)
		}
	}

	ws, name := "", rest
	if splits := strings.SplitN(rest, SplitorWorkspace, 2); len(splits) == 2 {
		ws, name = splits[0], splits[1]
		if ws == "" {
			return Reference{}, fmt.Errorf("invalid reference: empty workspace in %s", raw)
		}
	}
	if name == "" {
		return Reference{}, fmt.Errorf("invalid reference: missing model name in %s", raw)
	}

	return Reference{Workspace: ws, Model: name, Precision: precision}, nil
}
