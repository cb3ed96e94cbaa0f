package capability

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// FeatureID names one language feature.
type FeatureID string

const (
	FeatureExperimentBlock   FeatureID = "experiment_block"
	FeatureAnalyzeBlock      FeatureID = "analyze_block"
	FeatureBranchBlock       FeatureID = "branch_block"
	FeatureDesignBlock       FeatureID = "design_block"
	FeatureOptimizeBlock     FeatureID = "optimize_block"
	FeatureRulesBlock        FeatureID = "rules_block"
	FeatureHypothesisBlock   FeatureID = "hypothesis_block"
	FeatureTimelineBlock     FeatureID = "timeline_block"
	FeatureSimulateBlock     FeatureID = "simulate_block"
	FeatureParameterTemplate FeatureID = "parameter_templates"
	FeatureLociBlock         FeatureID = "loci_block"
	FeaturePathwaysBlock     FeatureID = "pathways_block"
	FeatureComplexesBlock    FeatureID = "complexes_block"
	FeatureTranscriptsBlock  FeatureID = "transcripts_block"
	FeatureProteinsBlock     FeatureID = "proteins_block"
	FeatureMetabolitesBlock  FeatureID = "metabolites_block"
	FeatureSymbolicRefs      FeatureID = "symbolic_references"
	FeatureIOContracts       FeatureID = "io_contracts"
	FeatureCustomSchemas     FeatureID = "custom_schemas"
	FeatureGuidedDiscovery   FeatureID = "guided_discovery"
	FeatureRefineData        FeatureID = "refine_data"
)

// EngineType is a named support tier of a target execution engine.
type EngineType string

const (
	EngineBasic        EngineType = "basic"
	EngineStandard     EngineType = "standard"
	EngineAdvanced     EngineType = "advanced"
	EngineExperimental EngineType = "experimental"
)

// engineRank orders the tiers for subset reasoning and upgrade suggestions.
var engineRank = map[EngineType]int{
	EngineBasic:        0,
	EngineStandard:     1,
	EngineAdvanced:     2,
	EngineExperimental: 3,
}

// ParseEngineType validates an engine tier name.
func ParseEngineType(s string) (EngineType, error) {
	e := EngineType(s)
	if _, ok := engineRank[e]; !ok {
		return "", fmt.Errorf("unknown engine type %q: must be basic, standard, advanced or experimental", s)
	}
	return e, nil
}

// Feature describes one language feature: when it appeared, whether it is
// still experimental, which other features it presumes, and the lowest
// engine tier that supports it. Features are immutable after registration.
type Feature struct {
	ID                FeatureID
	VersionIntroduced string
	Experimental      bool
	Dependencies      mapset.Set[FeatureID]
	MinEngine         EngineType
}

func deps(ids ...FeatureID) mapset.Set[FeatureID] {
	return mapset.NewThreadUnsafeSet(ids...)
}

// defaultFeatures is the full language feature table. Append-only: entries
// are never removed or redefined once released.
var defaultFeatures = []Feature{
	{ID: FeatureExperimentBlock, VersionIntroduced: "1.0", MinEngine: EngineBasic, Dependencies: deps()},
	{ID: FeatureAnalyzeBlock, VersionIntroduced: "1.0", MinEngine: EngineBasic, Dependencies: deps()},
	{ID: FeatureBranchBlock, VersionIntroduced: "1.0", MinEngine: EngineBasic, Dependencies: deps(FeatureAnalyzeBlock)},

	{ID: FeatureDesignBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps()},
	{ID: FeatureOptimizeBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps(FeatureExperimentBlock)},
	{ID: FeatureParameterTemplate, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps(FeatureOptimizeBlock)},
	{ID: FeatureRulesBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps()},
	{ID: FeatureHypothesisBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps()},
	{ID: FeatureTimelineBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps()},
	{ID: FeatureSimulateBlock, VersionIntroduced: "1.1", MinEngine: EngineStandard, Dependencies: deps(FeatureRulesBlock)},

	{ID: FeatureLociBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeaturePathwaysBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeatureComplexesBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps(FeaturePathwaysBlock)},
	{ID: FeatureTranscriptsBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeatureProteinsBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeatureMetabolitesBlock, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeatureSymbolicRefs, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps(FeatureLociBlock, FeaturePathwaysBlock)},
	{ID: FeatureIOContracts, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps()},
	{ID: FeatureCustomSchemas, VersionIntroduced: "1.2", MinEngine: EngineAdvanced, Dependencies: deps(FeatureIOContracts)},

	{ID: FeatureGuidedDiscovery, VersionIntroduced: "2.0", MinEngine: EngineExperimental, Experimental: true, Dependencies: deps(FeatureDesignBlock, FeatureOptimizeBlock)},
	{ID: FeatureRefineData, VersionIntroduced: "2.0", MinEngine: EngineExperimental, Experimental: true, Dependencies: deps(FeatureDesignBlock)},
}
