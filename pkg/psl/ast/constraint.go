package ast

import "fmt"

// Operator represents a comparison operator in a header constraint.
type Operator string

const (
	OperatorLessEqual    Operator = "<="
	OperatorGreaterEqual Operator = ">="
	OperatorLessThan     Operator = "<"
	OperatorGreaterThan  Operator = ">"
	OperatorEqual        Operator = "="
)

// Operators lists the recognized operators, two-character tokens first so
// that prefix matching never splits "<=" into "<".
var Operators = []Operator{
	OperatorLessEqual,
	OperatorGreaterEqual,
	OperatorLessThan,
	OperatorGreaterThan,
	OperatorEqual,
}

// Valid returns true if the operator is one of the five recognized tokens.
func (o Operator) Valid() bool {
	for _, op := range Operators {
		if o == op {
			return true
		}
	}
	return false
}

// Compare reports whether actual satisfies "actual <op> bound".
// Unknown operators are never satisfied.
func (o Operator) Compare(actual, bound float64) bool {
	switch o {
	case OperatorLessEqual:
		return actual <= bound
	case OperatorGreaterEqual:
		return actual >= bound
	case OperatorLessThan:
		return actual < bound
	case OperatorGreaterThan:
		return actual > bound
	case OperatorEqual:
		return actual == bound
	default:
		return false
	}
}

// Constraint is a quantitative header requirement such as "time<=90min".
type Constraint struct {
	Name     string   `json:"name"`
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
	Unit     string   `json:"unit,omitempty"` // Empty when the constraint is unitless
	Raw      string   `json:"raw"`            // Source text as written in the header
}

// HasUnit returns true if the constraint was written with a unit suffix.
func (c Constraint) HasUnit() bool {
	return c.Unit != ""
}

// Satisfied reports whether an observed value satisfies the constraint.
func (c Constraint) Satisfied(actual float64) bool {
	return c.Operator.Compare(actual, c.Value)
}

// String returns the constraint in canonical "name<op>value[unit]" form.
func (c Constraint) String() string {
	return fmt.Sprintf("%s%s%g%s", c.Name, c.Operator, c.Value, c.Unit)
}
