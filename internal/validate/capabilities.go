package validate

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/hcl/v2"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/capability"
)

// kindFeature maps block kinds to the language feature they exercise.
var kindFeature = map[ast.BlockKind]capability.FeatureID{
	ast.KindExperiment:      capability.FeatureExperimentBlock,
	ast.KindAnalyze:         capability.FeatureAnalyzeBlock,
	ast.KindBranch:          capability.FeatureBranchBlock,
	ast.KindDesign:          capability.FeatureDesignBlock,
	ast.KindOptimize:        capability.FeatureOptimizeBlock,
	ast.KindRules:           capability.FeatureRulesBlock,
	ast.KindHypothesis:      capability.FeatureHypothesisBlock,
	ast.KindTimeline:        capability.FeatureTimelineBlock,
	ast.KindSimulate:        capability.FeatureSimulateBlock,
	ast.KindLoci:            capability.FeatureLociBlock,
	ast.KindPathways:        capability.FeaturePathwaysBlock,
	ast.KindComplexes:       capability.FeatureComplexesBlock,
	ast.KindTranscripts:     capability.FeatureTranscriptsBlock,
	ast.KindProteins:        capability.FeatureProteinsBlock,
	ast.KindMetabolites:     capability.FeatureMetabolitesBlock,
	ast.KindRefineData:      capability.FeatureRefineData,
	ast.KindGuidedDiscovery: capability.FeatureGuidedDiscovery,
}

// capabilityPass compares every feature the document exercises against the
// target engine's capability set. Unsupported features are warnings, never
// errors: a script stays valid even when a specific runtime will reject
// parts of it.
func capabilityPass(doc *ast.Document, caps *capability.Registry, engine capability.EngineType, res *Result) {
	available := caps.CapabilitiesFor(engine)

	for _, b := range allBlocks(doc) {
		if feat, ok := kindFeature[b.Kind]; ok {
			reportFeature(feat, b.DefRange, caps, engine, available, res)
		}
		if b.Contract != nil {
			reportFeature(capability.FeatureIOContracts, b.Contract.DefRange, caps, engine, available, res)
		}
		for _, f := range b.Fields {
			if vs := f.Value.Templates(); len(vs) > 0 {
				reportFeature(capability.FeatureParameterTemplate, f.Range, caps, engine, available, res)
			}
			if vs := f.Value.SymbolRefs(); len(vs) > 0 {
				reportFeature(capability.FeatureSymbolicRefs, f.Range, caps, engine, available, res)
			}
		}
	}

	if len(doc.SchemaImports) > 0 {
		subject := hcl.Range{Filename: doc.Filename}
		if doc.ImportsRange != nil {
			subject = *doc.ImportsRange
		}
		reportFeature(capability.FeatureCustomSchemas, subject, caps, engine, available, res)
	}
}

func reportFeature(id capability.FeatureID, subject hcl.Range, caps *capability.Registry, engine capability.EngineType, available mapset.Set[capability.FeatureID], res *Result) {
	feat, known := caps.Lookup(id)
	if !known {
		return
	}

	if available.Contains(id) {
		if feat.Experimental {
			res.add(Issue{
				Severity: SevInfo,
				Code:     CodeExperimental,
				Message:  fmt.Sprintf("feature %q is experimental and may change between releases", id),
				Subject:  &subject,
				Feature:  id,
			})
		}
		return
	}

	res.add(Issue{
		Severity: SevWarning,
		Code:     CodeCapability,
		Message: fmt.Sprintf("feature %q (introduced in version %s) is not supported by engine type %q",
			id, feat.VersionIntroduced, engine),
		Subject:      &subject,
		Feature:      id,
		SuggestedFix: fmt.Sprintf("Target an engine of type %q or newer.", feat.MinEngine),
	})

	for _, dep := range caps.MissingDependencies(feat, available) {
		res.add(Issue{
			Severity: SevWarning,
			Code:     CodeCapabilityDep,
			Message: fmt.Sprintf("feature %q additionally depends on %q, which engine type %q does not support",
				id, dep, engine),
			Subject: &subject,
			Feature: dep,
		})
	}
}
