package registry

import (
	"strings"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/template"
)

// Node is one template in a requirement tree.
type Node struct {
	Template *template.Template
	Children []*Node
	// Deduped marks a template already present earlier in the tree.
	Deduped bool
}

// BuildTree resolves ref and, recursively, the templates it requires. A
// template reached a second time is kept as a Deduped leaf. A template that
// requires itself, directly or through others, is an ErrTemplateCycle.
func (r *Registry) BuildTree(ref string) (*Node, error) {
	return r.buildNode(ref, make(map[string]bool), nil)
}

func (r *Registry) buildNode(ref string, seen map[string]bool, path []string) (*Node, error) {
	t, err := r.Template(ref)
	if err != nil {
		return nil, err
	}
	full := t.FullName()
	for i, p := range path {
		if p == full {
			cycle := append(append([]string{}, path[i:]...), full)
			return nil, errors.Newf(errors.ErrTemplateCycle, "template requirements form a cycle: %s",
				strings.Join(cycle, " -> "))
		}
	}

	node := &Node{Template: t}
	if seen[full] {
		node.Deduped = true
		return node, nil
	}
	seen[full] = true

	path = append(path, full)
	for _, dep := range t.RequiredTemplates {
		child, err := r.buildNode(dep, seen, path)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrTemplateNotFound) {
				return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s requires %s", t.Name, dep)
			}
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Flatten returns the templates of a tree with requirements before the
// templates that need them. Each template appears once.
func Flatten(root *Node) []*template.Template {
	seen := make(map[string]bool)
	var result []*template.Template
	flattenRecursive(root, seen, &result)
	return result
}

func flattenRecursive(node *Node, seen map[string]bool, result *[]*template.Template) {
	if node == nil || node.Deduped {
		return
	}
	full := node.Template.FullName()
	if seen[full] {
		return
	}
	for _, child := range node.Children {
		flattenRecursive(child, seen, result)
	}
	seen[full] = true
	*result = append(*result, node.Template)
}

// ResolveStack resolves every ref into one ordered stack. Templates shared
// between the requested refs appear once, at their first position.
func (r *Registry) ResolveStack(refs ...string) ([]*template.Template, error) {
	var stack []*template.Template
	seen := make(map[string]bool)
	for _, ref := range refs {
		root, err := r.BuildTree(ref)
		if err != nil {
			return nil, err
		}
		for _, t := range Flatten(root) {
			if !seen[t.FullName()] {
				seen[t.FullName()] = true
				stack = append(stack, t)
			}
		}
	}
	return stack, nil
}
