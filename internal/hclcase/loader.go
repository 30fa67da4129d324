// Package hclcase loads a host case description from an HCL file. A case
// file carries one `case` block whose attributes are the case variables;
// attribute names are folded to the canonical upper-case keys, so both
// `atm_grid` and `ATM_GRID` name the same variable.
package hclcase

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/atmconf/internal/caseenv"
)

var caseFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "case"},
	},
}

// Load parses the case file at path and returns the variable bag.
func Load(path string) (*caseenv.Case, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, diags)
	}
	return decode(file.Body, path)
}

// LoadSource parses case variables from in-memory HCL source. filename is
// only used in diagnostics.
func LoadSource(src []byte, filename string) (*caseenv.Case, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse case source %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, path string) (*caseenv.Case, error) {
	content, diags := body.Content(caseFileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode case file %s: %w", path, diags)
	}
	if len(content.Blocks) == 0 {
		return nil, fmt.Errorf("case file %s contains no case block", path)
	}

	vars := make(map[string]cty.Value)
	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to read case block in %s: %w", path, diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate case variable %q in %s: %w", name, path, diags)
			}
			vars[strings.ToUpper(name)] = val
		}
	}

	return caseenv.FromValues(vars), nil
}
