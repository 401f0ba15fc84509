package ast

// Visitor is the pre-order traversal contract of §4.4. WillEnter returning
// false skips the subtree entirely — WillExit is then not called for that
// node. Visitors are plain values; the same value must never be driven
// over the same module from two goroutines at once.
type Visitor interface {
	WillEnter(a *Arena, id NodeID) bool
	WillExit(a *Arena, id NodeID)
}

// Walk drives v over id and its descendants in pre-order.
func Walk(a *Arena, id NodeID, v Visitor) {
	if !v.WillEnter(a, id) {
		return
	}
	walkChildren(a, id, v)
	v.WillExit(a, id)
}

func walkEach[T interface{ NodeID() NodeID }](a *Arena, ids []T, v Visitor) {
	for _, id := range ids {
		Walk(a, id.NodeID(), v)
	}
}

func walkChildren(a *Arena, id NodeID, v Visitor) {
	switch a.Tag(id) {
	case TagBindingDeclaration:
		n, _ := a.AsBinding(id)
		Walk(a, n.Pattern.NodeID(), v)
		if n.Initializer != 0 {
			Walk(a, n.Initializer.NodeID(), v)
		}
	case TagFunctionDeclaration:
		n, _ := a.AsFunction(id)
		walkEach(a, n.Params, v)
		if n.Body != 0 {
			Walk(a, n.Body, v)
		}
	case TagParameter:
		n, _ := a.AsParameter(id)
		if n.Default != 0 {
			Walk(a, n.Default.NodeID(), v)
		}
	case TagStructDeclaration:
		n, _ := a.AsStruct(id)
		walkEach(a, n.Members, v)
	case TagTraitDeclaration:
		n, _ := a.AsTrait(id)
		walkEach(a, n.Members, v)
	case TagFieldDeclaration:
		n, _ := a.AsField(id)
		if n.Default != 0 {
			Walk(a, n.Default.NodeID(), v)
		}

	case TagArrayLiteral:
		n, _ := a.AsArrayLiteral(id)
		walkEach(a, n.Elements, v)
	case TagDictionaryLiteral:
		n, _ := a.AsDictionaryLiteral(id)
		for _, e := range n.Entries {
			Walk(a, e.Key.NodeID(), v)
			Walk(a, e.Value.NodeID(), v)
		}
	case TagTupleLiteral:
		n, _ := a.AsTupleLiteral(id)
		for _, e := range n.Elements {
			Walk(a, e.Value.NodeID(), v)
		}
	case TagNameExpression:
		n, _ := a.AsName(id)
		if n.Qualification != 0 {
			Walk(a, n.Qualification.NodeID(), v)
		}
	case TagCallExpression:
		n, _ := a.AsCall(id)
		Walk(a, n.Callee.NodeID(), v)
		for _, arg := range n.Args {
			Walk(a, arg.Value.NodeID(), v)
		}
	case TagTypeTestExpression:
		n, _ := a.AsTypeTest(id)
		Walk(a, n.Operand.NodeID(), v)
		Walk(a, n.Type.NodeID(), v)
	case TagLambdaExpression:
		n, _ := a.AsLambda(id)
		walkEach(a, n.Params, v)
		if n.Body != 0 {
			Walk(a, n.Body, v)
		}
	case TagConditionalExpression:
		n, _ := a.AsConditional(id)
		walkEach(a, n.Conditions, v)
		Walk(a, n.Then, v)
		if n.Else != 0 {
			Walk(a, n.Else.NodeID(), v)
		}
	case TagMatchExpression:
		n, _ := a.AsMatch(id)
		Walk(a, n.Scrutinee.NodeID(), v)
		for _, c := range n.Cases {
			Walk(a, c, v)
		}
	case TagTryExpression:
		n, _ := a.AsTry(id)
		Walk(a, n.Body, v)
		for _, c := range n.Catches {
			Walk(a, c.Pattern.NodeID(), v)
			Walk(a, c.Body, v)
		}
	case TagCondition:
		n, _ := a.AsCondition(id)
		if n.Pattern != 0 {
			Walk(a, n.Pattern.NodeID(), v)
		}
		Walk(a, n.Expression.NodeID(), v)
	case TagElse:
		n, _ := a.AsElse(id)
		if n.Block != 0 {
			Walk(a, n.Block, v)
		}
	case TagMatchCase:
		n, _ := a.AsMatchCase(id)
		Walk(a, n.Pattern.NodeID(), v)
		if n.Guard != 0 {
			Walk(a, n.Guard.NodeID(), v)
		}
		Walk(a, n.Body, v)

	case TagBindingPattern:
		n, _ := a.AsBindingPattern(id)
		Walk(a, n.Sub.NodeID(), v)
	case TagTuplePattern:
		n, _ := a.AsTuplePattern(id)
		for _, e := range n.Elements {
			Walk(a, e.Value.NodeID(), v)
		}
	case TagExtractorPattern:
		n, _ := a.AsExtractorPattern(id)
		for _, e := range n.Args {
			Walk(a, e.Value.NodeID(), v)
		}
	case TagTypePattern:
		n, _ := a.AsTypePattern(id)
		Walk(a, n.Operand.NodeID(), v)
		Walk(a, n.Type.NodeID(), v)

	case TagBlockStatement:
		n, _ := a.AsBlock(id)
		walkEach(a, n.Statements, v)
	case TagForStatement:
		n, _ := a.AsFor(id)
		Walk(a, n.Pattern.NodeID(), v)
		Walk(a, n.Sequence.NodeID(), v)
		Walk(a, n.Body, v)
	case TagWhileStatement:
		n, _ := a.AsWhile(id)
		walkEach(a, n.Conditions, v)
		Walk(a, n.Body, v)
	case TagReturnStatement:
		n, _ := a.AsReturn(id)
		if n.Value != 0 {
			Walk(a, n.Value.NodeID(), v)
		}
	case TagThrowStatement:
		n, _ := a.AsThrow(id)
		Walk(a, n.Value.NodeID(), v)
	case TagYieldStatement:
		n, _ := a.AsYield(id)
		Walk(a, n.Value.NodeID(), v)
	case TagAssignmentStatement:
		n, _ := a.AsAssignment(id)
		Walk(a, n.Target.NodeID(), v)
		Walk(a, n.Value.NodeID(), v)
	case TagDeclarationStatement:
		n, _ := a.AsDeclarationStatement(id)
		Walk(a, n.Declaration.NodeID(), v)
	case TagExpressionStatement:
		n, _ := a.AsExpressionStatement(id)
		Walk(a, n.Expression.NodeID(), v)

	// Leaves with no children: literals, variable/import declarations,
	// wildcard/variable-decl patterns, break/continue.
	default:
	}
}

// PatternPath locates a binding inside a (possibly nested) tuple pattern,
// as a sequence of tuple-element indices from the pattern's root.
type PatternPath []int

func clonePath(path PatternPath, next int) PatternPath {
	out := make(PatternPath, len(path)+1)
	copy(out, path)
	out[len(path)] = next
	return out
}

// VisitPatternWithExpression walks p alongside e per §4.4: a tuple pattern
// aligned with a tuple literal of identical labels is visited element-wise;
// any other shape (or a label mismatch) fires cb once for the pattern as a
// whole against e.
func VisitPatternWithExpression(a *Arena, p PatternID, e ExpressionID, path PatternPath, cb func(leaf PatternID, value ExpressionID, path PatternPath)) {
	tp, isTuple := a.AsTuplePattern(p.NodeID())
	tl, isTupleLit := a.AsTupleLiteral(e.NodeID())
	if isTuple && isTupleLit && tupleShapesMatch(tp, tl) {
		for i, el := range tp.Elements {
			VisitPatternWithExpression(a, el.Value, tl.Elements[i].Value, clonePath(path, i), cb)
		}
		return
	}
	cb(p, e, path)
}

func tupleShapesMatch(tp *TuplePattern, tl *TupleLiteral) bool {
	if len(tp.Elements) != len(tl.Elements) {
		return false
	}
	for i, el := range tp.Elements {
		if el.Label != tl.Elements[i].Label {
			return false
		}
	}
	return true
}

// ForEachDeclaration enumerates every variable-introducing leaf of p, in
// order, calling cb with the tuple path rooted at path leading to each.
func ForEachDeclaration(a *Arena, p PatternID, path PatternPath, cb func(leaf PatternID, path PatternPath)) {
	switch a.Tag(p.NodeID()) {
	case TagVariableDeclPattern:
		cb(p, path)
	case TagBindingPattern:
		n, _ := a.AsBindingPattern(p.NodeID())
		ForEachDeclaration(a, n.Sub, path, cb)
	case TagTuplePattern:
		n, _ := a.AsTuplePattern(p.NodeID())
		for i, el := range n.Elements {
			ForEachDeclaration(a, el.Value, clonePath(path, i), cb)
		}
	case TagExtractorPattern:
		n, _ := a.AsExtractorPattern(p.NodeID())
		for i, el := range n.Args {
			ForEachDeclaration(a, el.Value, clonePath(path, i), cb)
		}
	case TagTypePattern:
		n, _ := a.AsTypePattern(p.NodeID())
		ForEachDeclaration(a, n.Operand, path, cb)
	default:
		// wildcard and equality patterns introduce no bindings.
	}
}
