package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/mazesearch/mazesearch/pkg/types"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL reads a maze written as top-level attributes:
//
//	width    = 8
//	barriers = [8, 23]
func decodeHCL(data []byte, filename string) (*types.MazeConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var cfg types.MazeConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &cfg, nil
}

func encodeHCL(cfg *types.MazeConfig) []byte {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	if cfg.Name != "" {
		body.SetAttributeValue("name", cty.StringVal(cfg.Name))
	}
	body.SetAttributeValue("width", cty.NumberIntVal(int64(cfg.Width)))
	body.SetAttributeValue("height", cty.NumberIntVal(int64(cfg.Height)))
	body.SetAttributeValue("start", cty.NumberIntVal(int64(cfg.Start)))
	body.SetAttributeValue("goal", cty.NumberIntVal(int64(cfg.Goal)))

	if len(cfg.Barriers) > 0 {
		ids := make([]cty.Value, len(cfg.Barriers))
		for i, id := range cfg.Barriers {
			ids[i] = cty.NumberIntVal(int64(id))
		}
		body.SetAttributeValue("barriers", cty.ListVal(ids))
	}
	if len(cfg.Algorithms) > 0 {
		names := make([]cty.Value, len(cfg.Algorithms))
		for i, name := range cfg.Algorithms {
			names[i] = cty.StringVal(name)
		}
		body.SetAttributeValue("algorithms", cty.ListVal(names))
	}

	return file.Bytes()
}
