package validate

import (
	"fmt"

	"github.com/geneforge/gfl/internal/ast"
)

// structuralPass checks every block against the grammar table: label arity,
// required fields, field shapes, required nested blocks. It also surfaces
// unknown top-level keys as warnings and checks template markers inside
// budgeted blocks against their declared parameter space.
func structuralPass(doc *ast.Document, res *Result) {
	for _, u := range doc.Unknown {
		r := u.DefRange
		res.add(Issue{
			Severity:     SevWarning,
			Code:         CodeUnknownBlock,
			Message:      fmt.Sprintf("unknown top-level key %q is ignored by this language version", u.Type),
			Subject:      &r,
			SuggestedFix: "Remove it, or upgrade to a language version that defines it.",
		})
	}

	for _, b := range allBlocks(doc) {
		checkBlockShape(b, res)
	}

	for _, b := range doc.Blocks {
		switch b.Kind {
		case ast.KindOptimize:
			checkTemplates(b, "search_space", res)
		case ast.KindGuidedDiscovery:
			checkTemplates(b, "design_params", res)
		}
	}
}

func checkBlockShape(b *ast.Block, res *Result) {
	rule, ok := blockRules[b.Kind]
	if !ok {
		return
	}

	if rule.labeled && b.Label == "" {
		res.errorf(b.DefRange, CodeStructural,
			fmt.Sprintf("Name the entity, e.g. %s \"MyEntity\" { ... }.", b.Kind),
			"%s block is missing its entity name label", b.Kind)
	}
	if !rule.labeled && b.Label != "" {
		res.errorf(b.DefRange, CodeStructural,
			"Remove the label.",
			"%s block does not take a label", b.Kind)
	}

	for _, fr := range rule.fields {
		v, present := b.Field(fr.name)
		if !present {
			if fr.required {
				res.errorf(b.DefRange, CodeStructural,
					fmt.Sprintf("Add the required field %q with a %s value.", fr.name, fr.shape),
					"%s block is missing required field %q", b.Kind, fr.name)
			}
			continue
		}
		if !fr.shape.matches(v) {
			res.errorf(b.FieldRange(fr.name), CodeStructural,
				fmt.Sprintf("Change %q to a %s.", fr.name, fr.shape),
				"field %q of %s block must be a %s, got a %s", fr.name, b.Kind, fr.shape, v.Kind)
		}
	}

	for _, wantKind := range rule.requiredBlocks {
		if len(b.BlocksOfKind(wantKind)) == 0 {
			res.errorf(b.DefRange, CodeStructural,
				fmt.Sprintf("Add a nested %s block.", wantKind),
				"%s block requires a nested %s block", b.Kind, wantKind)
		}
	}
}

// checkTemplates verifies that every ${identifier} marker inside the block,
// its own fields and nested bodies alike, names a declared key of the
// block's parameter space field. The space field itself is exempt.
func checkTemplates(b *ast.Block, spaceField string, res *Result) {
	space, ok := b.Field(spaceField)
	if !ok || space.Kind != ast.MappingVal {
		// Missing or misshapen search space was already reported.
		return
	}
	declared := make(map[string]bool, len(space.Entries))
	for _, e := range space.Entries {
		declared[e.Name] = true
	}

	checkFields := func(fields []ast.Field) {
		for _, f := range fields {
			if f.Name == spaceField {
				continue
			}
			for _, tpl := range f.Value.Templates() {
				for _, name := range tpl.TemplateVars {
					if declared[name] {
						continue
					}
					res.errorf(tpl.Range, CodeTemplate,
						fmt.Sprintf("Declare %q under %s, or reference one of the declared keys.", name, spaceField),
						"template variable %q is not declared in the %s of the enclosing %s block", name, spaceField, b.Kind)
				}
			}
		}
	}

	var walk func(blk *ast.Block)
	walk = func(blk *ast.Block) {
		checkFields(blk.Fields)
		for _, nb := range blk.Blocks {
			walk(nb)
		}
	}
	checkFields(b.Fields)
	for _, nb := range b.Blocks {
		walk(nb)
	}
}
