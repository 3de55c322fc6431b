package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrInvalidQuery indicates a generated query that is not valid GraphQL,
// usually because a schema property is not a legal field name.
var ErrInvalidQuery = errors.New("source: invalid query")

// DefaultMaxDepth bounds nested selections.
const DefaultMaxDepth = 3

// Page selects a window of a list query. A non-positive Limit requests the
// whole list without pagination arguments.
type Page struct {
	Limit  int
	Offset int
}

// QueryBuilder generates list queries from schema definitions.
type QueryBuilder struct {
	// Blacklist names properties that are never selected.
	Blacklist []string
	// MaxDepth limits how many object levels below the root are selected.
	MaxDepth int
}

// NewQueryBuilder creates a builder that skips the given properties.
func NewQueryBuilder(blacklist []string, maxDepth int) QueryBuilder {
	return QueryBuilder{Blacklist: blacklist, MaxDepth: maxDepth}
}

// OperationName returns the list operation of a canonical type name.
func OperationName(canonical string) string {
	return "get" + canonical + "List"
}

// Build returns the operation name and query text for one page of def.
//
// Example:
//
//	query getPersonList { getPersonList(pagination: {limit: 10, offset: 0}) { id __typename name } }
func (b QueryBuilder) Build(s *Schema, def TypeDefinition, page Page) (string, string, error) {
	op := OperationName(def.Canonical)
	root := b.deref(s, def.Node, nil)
	if root == nil || root.Properties == nil {
		return "", "", fmt.Errorf("type %s: no object properties", def.Name)
	}

	visiting := map[*Node]bool{def.Node: true, root: true}
	fields := b.selection(s, root, 0, true, visiting)

	var q strings.Builder
	q.WriteString("query ")
	q.WriteString(op)
	q.WriteString(" { ")
	q.WriteString(op)
	if page.Limit > 0 {
		fmt.Fprintf(&q, "(pagination: {limit: %d, offset: %d})", page.Limit, page.Offset)
	}
	q.WriteString(" { ")
	q.WriteString(strings.Join(fields, " "))
	q.WriteString(" } }")

	query := q.String()
	if _, err := parser.ParseQuery(&ast.Source{Name: op, Input: query}); err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrInvalidQuery, op, err)
	}
	return op, query, nil
}

// selection lists the fields of an object node. Every object selects
// __typename, and id when it declares one (the root always does).
func (b QueryBuilder) selection(s *Schema, node *Node, depth int, root bool, visiting map[*Node]bool) []string {
	fields := make([]string, 0, node.Properties.Len()+2)
	if root || node.HasProperty("id") {
		fields = append(fields, "id")
	}
	fields = append(fields, "__typename")

	for pair := node.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		if name == "id" || name == "__typename" || b.blacklisted(name) {
			continue
		}
		child := b.deref(s, pair.Value, visiting)
		if child == nil {
			continue
		}
		if child.Items != nil {
			if child = b.deref(s, child.Items, visiting); child == nil {
				continue
			}
		}
		if child.Properties == nil {
			if !child.Type.Has("object") {
				fields = append(fields, name)
			}
			continue
		}
		if depth+1 > b.maxDepth() || visiting[child] {
			continue
		}
		visiting[child] = true
		nested := b.selection(s, child, depth+1, false, visiting)
		delete(visiting, child)
		fields = append(fields, name+" { "+strings.Join(nested, " ")+" }")
	}
	return fields
}

// deref follows $ref and picks the first non-null branch of anyOf/oneOf and
// the first object branch of allOf. Nodes already on the current path
// resolve to nil.
func (b QueryBuilder) deref(s *Schema, node *Node, visiting map[*Node]bool) *Node {
	for i := 0; node != nil && i < 32; i++ {
		switch {
		case node.Ref != "":
			target, ok := s.Resolve(node.Ref)
			if !ok || visiting[target] {
				return nil
			}
			node = target
		case len(node.AnyOf) > 0:
			node = firstNonNull(node.AnyOf)
		case len(node.OneOf) > 0:
			node = firstNonNull(node.OneOf)
		case len(node.AllOf) > 0 && node.Properties == nil:
			node = firstNonNull(node.AllOf)
		default:
			return node
		}
	}
	return nil
}

func firstNonNull(nodes []*Node) *Node {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if len(n.Type) == 1 && n.Type[0] == "null" {
			continue
		}
		return n
	}
	return nil
}

func (b QueryBuilder) blacklisted(name string) bool {
	for _, skip := range b.Blacklist {
		if skip == name {
			return true
		}
	}
	return false
}

func (b QueryBuilder) maxDepth() int {
	if b.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return b.MaxDepth
}
