package ast

// castTo is the shared implementation behind every per-kind accessor
// below: check the stored tag before the type assertion, mirroring the
// teacher's `Items.Tag(id) (*TagItem, bool)` pattern.
func castTo[T any](a *Arena, id NodeID, tag NodeTag) (*T, bool) {
	if a.Tag(id) != tag {
		return nil, false
	}
	p, ok := a.Payload(id).(*T)
	return p, ok
}

func (a *Arena) AsBinding(id NodeID) (*Binding, bool) {
	return castTo[Binding](a, id, TagBindingDeclaration)
}
func (a *Arena) AsFunction(id NodeID) (*Function, bool) {
	return castTo[Function](a, id, TagFunctionDeclaration)
}
func (a *Arena) AsParameter(id NodeID) (*Parameter, bool) {
	return castTo[Parameter](a, id, TagParameter)
}
func (a *Arena) AsStruct(id NodeID) (*Struct, bool) {
	return castTo[Struct](a, id, TagStructDeclaration)
}
func (a *Arena) AsTrait(id NodeID) (*Trait, bool) {
	return castTo[Trait](a, id, TagTraitDeclaration)
}
func (a *Arena) AsField(id NodeID) (*Field, bool) {
	return castTo[Field](a, id, TagFieldDeclaration)
}
func (a *Arena) AsVariable(id NodeID) (*Variable, bool) {
	return castTo[Variable](a, id, TagVariableDeclaration)
}
func (a *Arena) AsImport(id NodeID) (*Import, bool) {
	return castTo[Import](a, id, TagImportDeclaration)
}

func (a *Arena) AsBoolLiteral(id NodeID) (*BoolLiteral, bool) {
	return castTo[BoolLiteral](a, id, TagBoolLiteral)
}
func (a *Arena) AsIntegerLiteral(id NodeID) (*IntegerLiteral, bool) {
	return castTo[IntegerLiteral](a, id, TagIntegerLiteral)
}
func (a *Arena) AsFloatLiteral(id NodeID) (*FloatLiteral, bool) {
	return castTo[FloatLiteral](a, id, TagFloatLiteral)
}
func (a *Arena) AsStringLiteral(id NodeID) (*StringLiteral, bool) {
	return castTo[StringLiteral](a, id, TagStringLiteral)
}
func (a *Arena) AsArrayLiteral(id NodeID) (*ArrayLiteral, bool) {
	return castTo[ArrayLiteral](a, id, TagArrayLiteral)
}
func (a *Arena) AsDictionaryLiteral(id NodeID) (*DictionaryLiteral, bool) {
	return castTo[DictionaryLiteral](a, id, TagDictionaryLiteral)
}
func (a *Arena) AsTupleLiteral(id NodeID) (*TupleLiteral, bool) {
	return castTo[TupleLiteral](a, id, TagTupleLiteral)
}
func (a *Arena) AsName(id NodeID) (*Name, bool) {
	return castTo[Name](a, id, TagNameExpression)
}
func (a *Arena) AsCall(id NodeID) (*Call, bool) {
	return castTo[Call](a, id, TagCallExpression)
}
func (a *Arena) AsTypeTest(id NodeID) (*TypeTest, bool) {
	return castTo[TypeTest](a, id, TagTypeTestExpression)
}
func (a *Arena) AsLambda(id NodeID) (*Lambda, bool) {
	return castTo[Lambda](a, id, TagLambdaExpression)
}
func (a *Arena) AsConditional(id NodeID) (*Conditional, bool) {
	return castTo[Conditional](a, id, TagConditionalExpression)
}
func (a *Arena) AsMatch(id NodeID) (*Match, bool) {
	return castTo[Match](a, id, TagMatchExpression)
}
func (a *Arena) AsTry(id NodeID) (*Try, bool) {
	return castTo[Try](a, id, TagTryExpression)
}
func (a *Arena) AsCondition(id NodeID) (*Condition, bool) {
	return castTo[Condition](a, id, TagCondition)
}
func (a *Arena) AsElse(id NodeID) (*Else, bool) {
	return castTo[Else](a, id, TagElse)
}
func (a *Arena) AsMatchCase(id NodeID) (*MatchCase, bool) {
	return castTo[MatchCase](a, id, TagMatchCase)
}

func (a *Arena) AsBindingPattern(id NodeID) (*BindingPattern, bool) {
	return castTo[BindingPattern](a, id, TagBindingPattern)
}
func (a *Arena) AsTuplePattern(id NodeID) (*TuplePattern, bool) {
	return castTo[TuplePattern](a, id, TagTuplePattern)
}
func (a *Arena) AsExtractorPattern(id NodeID) (*ExtractorPattern, bool) {
	return castTo[ExtractorPattern](a, id, TagExtractorPattern)
}
func (a *Arena) AsTypePattern(id NodeID) (*TypePattern, bool) {
	return castTo[TypePattern](a, id, TagTypePattern)
}
func (a *Arena) AsWildcardPattern(id NodeID) (*WildcardPattern, bool) {
	return castTo[WildcardPattern](a, id, TagWildcardPattern)
}
func (a *Arena) AsVariableDeclPattern(id NodeID) (*VariableDeclPattern, bool) {
	return castTo[VariableDeclPattern](a, id, TagVariableDeclPattern)
}

func (a *Arena) AsBlock(id NodeID) (*Block, bool) {
	return castTo[Block](a, id, TagBlockStatement)
}
func (a *Arena) AsBreak(id NodeID) (*Break, bool) {
	return castTo[Break](a, id, TagBreakStatement)
}
func (a *Arena) AsContinue(id NodeID) (*Continue, bool) {
	return castTo[Continue](a, id, TagContinueStatement)
}
func (a *Arena) AsFor(id NodeID) (*For, bool) {
	return castTo[For](a, id, TagForStatement)
}
func (a *Arena) AsWhile(id NodeID) (*While, bool) {
	return castTo[While](a, id, TagWhileStatement)
}
func (a *Arena) AsReturn(id NodeID) (*Return, bool) {
	return castTo[Return](a, id, TagReturnStatement)
}
func (a *Arena) AsThrow(id NodeID) (*Throw, bool) {
	return castTo[Throw](a, id, TagThrowStatement)
}
func (a *Arena) AsYield(id NodeID) (*Yield, bool) {
	return castTo[Yield](a, id, TagYieldStatement)
}
func (a *Arena) AsAssignment(id NodeID) (*Assignment, bool) {
	return castTo[Assignment](a, id, TagAssignmentStatement)
}
func (a *Arena) AsDeclarationStatement(id NodeID) (*DeclarationStatement, bool) {
	return castTo[DeclarationStatement](a, id, TagDeclarationStatement)
}
func (a *Arena) AsExpressionStatement(id NodeID) (*ExpressionStatement, bool) {
	return castTo[ExpressionStatement](a, id, TagExpressionStatement)
}
