package omz

import (
	"context"
	"encoding/json"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

// Dump runs omz_info_dumper for the given name pattern and parses its JSON
// output. The tool emits an array even for a single model.
func Dump(ctx context.Context, tool Tool, name string) ([]types.ModelInfo, error) {
	if name == "" {
		return nil, apierr.NewParameterInvalidError("model name is required")
	}
	out, err := tool.Output(ctx, "--name", name)
	if err != nil {
		return nil, err
	}
	infos, err := ParseInfo(out)
	if err != nil {
		return nil, apierr.NewOutputInvalidError(tool.Name, err)
	}
	if len(infos) == 0 {
		return nil, apierr.NewModelUnknownError(name)
	}
	return infos, nil
}

// DumpOne is Dump for an exact model name.
func DumpOne(ctx context.Context, tool Tool, name string) (*types.ModelInfo, error) {
	infos, err := Dump(ctx, tool, name)
	if err != nil {
		return nil, err
	}
	for i := range infos {
		if infos[i].Name == name {
			return &infos[i], nil
		}
	}
	return nil, apierr.NewModelUnknownError(name)
}

func ParseInfo(raw []byte) ([]types.ModelInfo, error) {
	var infos []types.ModelInfo
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}
