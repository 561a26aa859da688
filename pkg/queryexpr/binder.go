// Package queryexpr parses the CEL-flavoured --filter and --order-by
// expressions the listing commands accept and binds them onto query
// structs through a per-resource schema of setter closures.
package queryexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Op represents a supported predicate operation.
type Op string

const (
	OpEQ       Op = "=="
	OpContains Op = "contains"
)

// Field declares which operations a filter field accepts and how each
// one lands on the query struct.
type Field struct {
	Ops map[Op]func(value string) error
}

// Schema aggregates filtering and ordering rules for one listing.
type Schema struct {
	Fields map[string]Field
	Order  OrderSchema
}

// Bind parses both expressions and applies every predicate through the
// schema. An empty expression leaves the query untouched.
func Bind(filter, orderBy string, schema Schema) error {
	if err := bindFilter(filter, schema.Fields); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if err := bindOrder(orderBy, schema.Order); err != nil {
		return fmt.Errorf("order_by: %w", err)
	}
	return nil
}

func bindFilter(filter string, fields map[string]Field) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(fields) == 0 {
		return errors.New("no filter fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("invalid filter: %w", issues.Err())
	}

	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("failed to convert AST: %w", err)
	}
	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return err
	}

	for _, expr := range conjuncts {
		pred, err := parsePredicate(expr)
		if err != nil {
			return err
		}

		rule, ok := fields[pred.Field]
		if !ok {
			return fmt.Errorf("field %q is not allowed", pred.Field)
		}
		set, ok := rule.Ops[pred.Op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}
		if err := set(pred.Value); err != nil {
			return fmt.Errorf("field %q: %w", pred.Field, err)
		}
	}
	return nil
}

func buildEnv(fields map[string]Field) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields))
	for name := range fields {
		opts = append(opts, cel.Variable(name, cel.StringType))
	}
	// cel-go parses AND chains as nested binary calls; extractConjuncts
	// flattens them.
	return cel.NewEnv(opts...)
}

type predicate struct {
	Field string
	Op    Op
	Value string
}

func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parsePredicate(expr *exprpb.Expr) (predicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return predicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseEquality(call)
	case "contains":
		return parseContains(call)
	default:
		return predicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseEquality(call *exprpb.Expr_Call) (predicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return predicate{}, errors.New(`operator "==" expects two operands`)
	}

	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return predicate{}, err
	}
	value, err := parseStringLiteral(call.Args[1])
	if err != nil {
		return predicate{}, err
	}
	return predicate{Field: fieldName, Op: OpEQ, Value: value}, nil
}

func parseContains(call *exprpb.Expr_Call) (predicate, error) {
	var fieldExpr, valueExpr *exprpb.Expr
	if call.Target != nil {
		if len(call.Args) != 1 {
			return predicate{}, errors.New("contains with receiver must have exactly one argument")
		}
		fieldExpr = call.Target
		valueExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return predicate{}, errors.New("contains must have exactly two arguments")
		}
		fieldExpr = call.Args[0]
		valueExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return predicate{}, err
	}
	value, err := parseStringLiteral(valueExpr)
	if err != nil {
		return predicate{}, err
	}
	return predicate{Field: fieldName, Op: OpContains, Value: value}, nil
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be an identifier")
	}
	return ident.GetName(), nil
}

func parseStringLiteral(expr *exprpb.Expr) (string, error) {
	constant := expr.GetConstExpr()
	if constant == nil {
		return "", errors.New("right-hand side must be a string literal")
	}
	if _, ok := constant.ConstantKind.(*exprpb.Constant_StringValue); !ok {
		return "", fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
	}
	value := constant.GetStringValue()
	if value == "" {
		return "", errors.New("string literal must not be empty")
	}
	return value, nil
}
