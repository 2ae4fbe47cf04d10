package ast

import (
	"fmt"
	"strings"
)

// Enclosing walks the parent chain of n and returns the nearest ancestor
// of type T. The boolean is false when no ancestor matches.
func Enclosing[T Node](n Node) (T, bool, error) {
	var zero T
	if isNil(n) {
		return zero, false, nil
	}
	cur := n
	for {
		p, _, err := cur.base().Parent()
		if err != nil {
			return zero, false, err
		}
		if p == nil {
			return zero, false, nil
		}
		if t, ok := p.(T); ok {
			return t, true, nil
		}
		cur = p
	}
}

// ResolveBranchTarget finds the statement a BREAK, CONTINUE or LEAVE
// transfers control out of. With a target label the nearest enclosing
// labeled statement carrying that label wins (labels compare
// case-insensitively). Without one, BREAK and CONTINUE bind to the
// innermost WHILE or LOOP. LEAVE always needs a label.
func ResolveBranchTarget(br *BranchingStatement) (Labeled, error) {
	mode, err := br.Mode()
	if err != nil {
		return nil, err
	}
	label, err := br.TargetLabel()
	if err != nil {
		return nil, err
	}
	if label == "" && mode == BranchLeave {
		return nil, fmt.Errorf("%w: LEAVE requires a label", ErrUnresolvedLabel)
	}
	var cur Node = br
	for {
		p, _, err := cur.base().Parent()
		if err != nil {
			return nil, err
		}
		if p == nil {
			break
		}
		cur = p
		l, ok := p.(Labeled)
		if !ok {
			continue
		}
		if label == "" {
			switch l.(type) {
			case *WhileStatement, *LoopStatement:
				return l, nil
			}
			continue
		}
		has, err := l.HasLabel()
		if err != nil {
			return nil, err
		}
		if !has {
			continue
		}
		got, err := l.Label()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(got, label) {
			return l, nil
		}
	}
	if label == "" {
		return nil, fmt.Errorf("%w: %s outside of a loop", ErrUnresolvedLabel, mode)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnresolvedLabel, label)
}
