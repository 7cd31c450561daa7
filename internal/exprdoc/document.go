package exprdoc

// Node is the YAML shape of one expression tree node. Exactly the fields
// for its kind may be set; everything else must be absent.
type Node struct {
	// Kind selects the variant: "sum", "product", "power", "symbol",
	// "tensor", "spinor", "const", or "var".
	Kind string `yaml:"kind" json:"kind"`

	// Name names symbols, tensors, spinors, and pattern variables.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Space is the representation space of a tensor or spinor.
	Space string `yaml:"space,omitempty" json:"space,omitempty"`

	// Indices are a tensor's index names, in order.
	Indices []string `yaml:"indices,omitempty" json:"indices,omitempty"`

	// Note is annotation metadata. It is carried through but ignored by
	// matching.
	Note string `yaml:"note,omitempty" json:"note,omitempty"`

	// Value is a constant's exact rational value, e.g. "2" or "3/2".
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// Terms are a sum's terms.
	Terms []Node `yaml:"terms,omitempty" json:"terms,omitempty"`

	// Factors are a product's factors.
	Factors []Node `yaml:"factors,omitempty" json:"factors,omitempty"`

	// Base and Exponent are a power's operands.
	Base     *Node `yaml:"base,omitempty" json:"base,omitempty"`
	Exponent *Node `yaml:"exponent,omitempty" json:"exponent,omitempty"`
}

// RuleDoc is the YAML shape of one rewrite rule.
type RuleDoc struct {
	Name        string `yaml:"name" json:"name"`
	Pattern     Node   `yaml:"pattern" json:"pattern"`
	Replacement Node   `yaml:"replacement" json:"replacement"`
}

// RulesDoc is a rewrite-rule document: an ordered rule list.
type RulesDoc struct {
	Rules []RuleDoc `yaml:"rules" json:"rules"`
}

// Node kind constants.
const (
	KindSum     = "sum"
	KindProduct = "product"
	KindPower   = "power"
	KindSymbol  = "symbol"
	KindTensor  = "tensor"
	KindSpinor  = "spinor"
	KindConst   = "const"
	KindVar     = "var"
)
