package schema

// BaseType is one of the fixed bioinformatics data formats the type system
// is built on. Custom schemas narrow these; they never add new ones.
type BaseType string

const (
	FASTA  BaseType = "FASTA"
	FASTQ  BaseType = "FASTQ"
	SAM    BaseType = "SAM"
	BAM    BaseType = "BAM"
	VCF    BaseType = "VCF"
	BED    BaseType = "BED"
	CSV    BaseType = "CSV"
	JSON   BaseType = "JSON"
	Text   BaseType = "TEXT"
	Binary BaseType = "BINARY"
)

// compatibleWith maps each base type to the types a producer of it may feed,
// beyond itself. The graph is fixed: text-shaped formats degrade to TEXT,
// BAM degrades to BINARY. There is no BAM -> SAM edge; converting between
// container forms is an engine concern, not a typing one.
var compatibleWith = map[BaseType][]BaseType{
	FASTA: {Text},
	FASTQ: {Text},
	SAM:   {Text},
	BAM:   {Binary},
	VCF:   {Text},
	BED:   {Text},
	CSV:   {Text},
	JSON:  {Text},
}

// IsBaseType reports whether name is one of the fixed base types.
func IsBaseType(name string) bool {
	switch BaseType(name) {
	case FASTA, FASTQ, SAM, BAM, VCF, BED, CSV, JSON, Text, Binary:
		return true
	}
	return false
}

// baseCompatible reports whether a producer of type p may feed a consumer
// expecting type c under the fixed graph.
func baseCompatible(p, c BaseType) bool {
	if p == c {
		return true
	}
	for _, target := range compatibleWith[p] {
		if target == c {
			return true
		}
	}
	return false
}
