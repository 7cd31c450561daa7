package exprdoc

import (
	"bytes"
	"fmt"
	"math/big"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/bollu/Wheeler/internal/expr"
)

// DecodeError reports a malformed expression document.
type DecodeError struct {
	Field   string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("expression document: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("expression document: %s", e.Message)
}

// Load reads and decodes an expression document from a YAML file.
func Load(path string) (expr.Expr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expression document: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML expression document. Unknown fields are rejected.
func Decode(data []byte) (expr.Expr, error) {
	var n Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return Build(n)
}

// LoadRules reads and decodes a rewrite-rule document from a YAML file.
// Rule order in the document is the application order.
func LoadRules(path string) ([]RuleDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules document: %w", err)
	}
	var doc RulesDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, &DecodeError{Field: "rules", Message: "rules list is required and must be non-empty"}
	}
	for i, r := range doc.Rules {
		if r.Name == "" {
			return nil, &DecodeError{Field: fmt.Sprintf("rules[%d]", i), Message: "name is required"}
		}
	}
	return doc.Rules, nil
}

// Build converts a decoded Node into an expression tree, normalizing all
// names to NFC and enforcing per-kind field shape. Sums and products go
// through the flattening constructors.
func Build(n Node) (expr.Expr, error) {
	return build(n, "")
}

func build(n Node, field string) (expr.Expr, error) {
	switch n.Kind {
	case KindSum:
		if len(n.Terms) == 0 {
			return nil, &DecodeError{Field: field, Message: "sum requires a non-empty terms list"}
		}
		terms := make([]expr.Expr, len(n.Terms))
		for i, t := range n.Terms {
			e, err := build(t, fmt.Sprintf("%s/terms[%d]", field, i))
			if err != nil {
				return nil, err
			}
			terms[i] = e
		}
		return expr.NewSum(terms...), nil

	case KindProduct:
		if len(n.Factors) == 0 {
			return nil, &DecodeError{Field: field, Message: "product requires a non-empty factors list"}
		}
		factors := make([]expr.Expr, len(n.Factors))
		for i, f := range n.Factors {
			e, err := build(f, fmt.Sprintf("%s/factors[%d]", field, i))
			if err != nil {
				return nil, err
			}
			factors[i] = e
		}
		return expr.NewProduct(factors...), nil

	case KindPower:
		if n.Base == nil || n.Exponent == nil {
			return nil, &DecodeError{Field: field, Message: "power requires base and exponent"}
		}
		base, err := build(*n.Base, field+"/base")
		if err != nil {
			return nil, err
		}
		exp, err := build(*n.Exponent, field+"/exponent")
		if err != nil {
			return nil, err
		}
		return expr.NewPower(base, exp), nil

	case KindSymbol:
		if n.Name == "" {
			return nil, &DecodeError{Field: field, Message: "symbol requires a name"}
		}
		return &expr.Symbol{Name: nfc(n.Name), Note: n.Note}, nil

	case KindTensor:
		if n.Name == "" {
			return nil, &DecodeError{Field: field, Message: "tensor requires a name"}
		}
		if n.Space == "" {
			return nil, &DecodeError{Field: field, Message: "tensor requires a representation space"}
		}
		indices := make([]string, len(n.Indices))
		for i, ix := range n.Indices {
			indices[i] = nfc(ix)
		}
		return &expr.TensorSymbol{Name: nfc(n.Name), Space: nfc(n.Space), Indices: indices, Note: n.Note}, nil

	case KindSpinor:
		if n.Name == "" {
			return nil, &DecodeError{Field: field, Message: "spinor requires a name"}
		}
		return &expr.SpinorSymbol{Name: nfc(n.Name), Space: nfc(n.Space), Note: n.Note}, nil

	case KindConst:
		if n.Value == "" {
			return nil, &DecodeError{Field: field, Message: "const requires a value"}
		}
		r, ok := new(big.Rat).SetString(n.Value)
		if !ok {
			return nil, &DecodeError{Field: field, Message: fmt.Sprintf("not an exact rational: %q", n.Value)}
		}
		return &expr.Const{Value: r}, nil

	case KindVar:
		if n.Name == "" {
			return nil, &DecodeError{Field: field, Message: "pattern variable requires a name"}
		}
		return &expr.PatternVar{Name: nfc(n.Name)}, nil

	case "":
		return nil, &DecodeError{Field: field, Message: "kind is required"}
	default:
		return nil, &DecodeError{Field: field, Message: fmt.Sprintf("unknown kind %q", n.Kind)}
	}
}

// nfc normalizes a name to NFC so visually identical names compare equal
// regardless of the document's Unicode encoding choices.
func nfc(s string) string { return norm.NFC.String(s) }
