package ast

// Insert constructors. Each wraps Arena.Insert with the node's tag and
// returns the category-typed identity the parser and lowerer consume.

func (a *Arena) NewBinding(n *Binding) DeclarationID {
	return DeclarationID(a.Insert(TagBindingDeclaration, n.Site, n))
}
func (a *Arena) NewFunction(n *Function) DeclarationID {
	return DeclarationID(a.Insert(TagFunctionDeclaration, n.Site, n))
}
func (a *Arena) NewParameter(n *Parameter) ParameterID {
	return ParameterID(a.Insert(TagParameter, n.Site, n))
}
func (a *Arena) NewStruct(n *Struct) DeclarationID {
	return DeclarationID(a.Insert(TagStructDeclaration, n.Site, n))
}
func (a *Arena) NewTrait(n *Trait) DeclarationID {
	return DeclarationID(a.Insert(TagTraitDeclaration, n.Site, n))
}
func (a *Arena) NewField(n *Field) DeclarationID {
	return DeclarationID(a.Insert(TagFieldDeclaration, n.Site, n))
}
func (a *Arena) NewVariable(n *Variable) DeclarationID {
	return DeclarationID(a.Insert(TagVariableDeclaration, n.Site, n))
}
func (a *Arena) NewImport(n *Import) DeclarationID {
	return DeclarationID(a.Insert(TagImportDeclaration, n.Site, n))
}

func (a *Arena) NewBoolLiteral(n *BoolLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagBoolLiteral, n.Site, n))
}
func (a *Arena) NewIntegerLiteral(n *IntegerLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagIntegerLiteral, n.Site, n))
}
func (a *Arena) NewFloatLiteral(n *FloatLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagFloatLiteral, n.Site, n))
}
func (a *Arena) NewStringLiteral(n *StringLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagStringLiteral, n.Site, n))
}
func (a *Arena) NewArrayLiteral(n *ArrayLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagArrayLiteral, n.Site, n))
}
func (a *Arena) NewDictionaryLiteral(n *DictionaryLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagDictionaryLiteral, n.Site, n))
}
func (a *Arena) NewTupleLiteral(n *TupleLiteral) ExpressionID {
	return ExpressionID(a.Insert(TagTupleLiteral, n.Site, n))
}
func (a *Arena) NewName(n *Name) ExpressionID {
	return ExpressionID(a.Insert(TagNameExpression, n.Site, n))
}
func (a *Arena) NewCall(n *Call) ExpressionID {
	return ExpressionID(a.Insert(TagCallExpression, n.Site, n))
}
func (a *Arena) NewTypeTest(n *TypeTest) ExpressionID {
	return ExpressionID(a.Insert(TagTypeTestExpression, n.Site, n))
}
func (a *Arena) NewLambda(n *Lambda) ExpressionID {
	return ExpressionID(a.Insert(TagLambdaExpression, n.Site, n))
}
func (a *Arena) NewConditional(n *Conditional) ExpressionID {
	return ExpressionID(a.Insert(TagConditionalExpression, n.Site, n))
}
func (a *Arena) NewMatch(n *Match) ExpressionID {
	return ExpressionID(a.Insert(TagMatchExpression, n.Site, n))
}
func (a *Arena) NewTry(n *Try) ExpressionID {
	return ExpressionID(a.Insert(TagTryExpression, n.Site, n))
}
func (a *Arena) NewCondition(n *Condition) ConditionID {
	return ConditionID(a.Insert(TagCondition, n.Site, n))
}
func (a *Arena) NewElse(n *Else) ElseID {
	return ElseID(a.Insert(TagElse, n.Site, n))
}
func (a *Arena) NewMatchCase(n *MatchCase) NodeID {
	return a.Insert(TagMatchCase, n.Site, n)
}

func (a *Arena) NewBindingPattern(n *BindingPattern) PatternID {
	return PatternID(a.Insert(TagBindingPattern, n.Site, n))
}
func (a *Arena) NewTuplePattern(n *TuplePattern) PatternID {
	return PatternID(a.Insert(TagTuplePattern, n.Site, n))
}
func (a *Arena) NewExtractorPattern(n *ExtractorPattern) PatternID {
	return PatternID(a.Insert(TagExtractorPattern, n.Site, n))
}
func (a *Arena) NewTypePattern(n *TypePattern) PatternID {
	return PatternID(a.Insert(TagTypePattern, n.Site, n))
}
func (a *Arena) NewWildcardPattern(n *WildcardPattern) PatternID {
	return PatternID(a.Insert(TagWildcardPattern, n.Site, n))
}
func (a *Arena) NewVariableDeclPattern(n *VariableDeclPattern) PatternID {
	return PatternID(a.Insert(TagVariableDeclPattern, n.Site, n))
}

func (a *Arena) NewBlock(n *Block) StatementID {
	return StatementID(a.Insert(TagBlockStatement, n.Site, n))
}
func (a *Arena) NewBreak(n *Break) StatementID {
	return StatementID(a.Insert(TagBreakStatement, n.Site, n))
}
func (a *Arena) NewContinue(n *Continue) StatementID {
	return StatementID(a.Insert(TagContinueStatement, n.Site, n))
}
func (a *Arena) NewFor(n *For) StatementID {
	return StatementID(a.Insert(TagForStatement, n.Site, n))
}
func (a *Arena) NewWhile(n *While) StatementID {
	return StatementID(a.Insert(TagWhileStatement, n.Site, n))
}
func (a *Arena) NewReturn(n *Return) StatementID {
	return StatementID(a.Insert(TagReturnStatement, n.Site, n))
}
func (a *Arena) NewThrow(n *Throw) StatementID {
	return StatementID(a.Insert(TagThrowStatement, n.Site, n))
}
func (a *Arena) NewYield(n *Yield) StatementID {
	return StatementID(a.Insert(TagYieldStatement, n.Site, n))
}
func (a *Arena) NewAssignment(n *Assignment) StatementID {
	return StatementID(a.Insert(TagAssignmentStatement, n.Site, n))
}
func (a *Arena) NewDeclarationStatement(n *DeclarationStatement) StatementID {
	return StatementID(a.Insert(TagDeclarationStatement, n.Site, n))
}
func (a *Arena) NewExpressionStatement(n *ExpressionStatement) StatementID {
	return StatementID(a.Insert(TagExpressionStatement, n.Site, n))
}
