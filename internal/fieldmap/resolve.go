package fieldmap

import "github.com/beevik/etree"

// Resolve finds the first node the compiled path matches, in document
// order, starting from root. The path is descendant-anchored: the first
// step may match root itself or any element below it, and the remaining
// steps must follow as an unbroken child chain. When several nodes match,
// only the first in document order is returned; nil means no match.
func Resolve(root *etree.Element, steps []Step) *etree.Element {
	if root == nil || len(steps) == 0 {
		return nil
	}
	return descend(root, steps)
}

// descend walks the tree in document order, trying to anchor the step
// chain at every element.
func descend(el *etree.Element, steps []Step) *etree.Element {
	if m := matchChain(el, steps); m != nil {
		return m
	}
	for _, child := range el.ChildElements() {
		if m := descend(child, steps); m != nil {
			return m
		}
	}
	return nil
}

// matchChain checks whether el matches the first step and the remaining
// steps continue as a child chain below it. Children are tried in order,
// with backtracking, so the first complete match in document order wins.
func matchChain(el *etree.Element, steps []Step) *etree.Element {
	if !matches(el, steps[0]) {
		return nil
	}
	if len(steps) == 1 {
		return el
	}
	for _, child := range el.ChildElements() {
		if m := matchChain(child, steps[1:]); m != nil {
			return m
		}
	}
	return nil
}

// matches compares an element against one step by namespace URI and local
// name. Prefixes in the document are irrelevant.
func matches(el *etree.Element, step Step) bool {
	return el.Tag == step.Local && el.NamespaceURI() == step.Space
}
