package ast

// Slot and property names, shared by every variant that declares them.
const (
	LabelProp               = "label"
	ConditionSlot           = "condition"
	BlockSlot               = "block"
	AtomicProp              = "atomic"
	StatementsSlot          = "statements"
	ExceptionGroupProp      = "exceptionGroup"
	ExceptionStatementsSlot = "exceptionStatements"
	CursorNameProp          = "cursorName"
	QuerySlot               = "query"
	IfBlockSlot             = "ifBlock"
	ElseBlockSlot           = "elseBlock"
	ModeProp                = "mode"
	VariableSlot            = "variable"
	ExpressionSlot          = "expression"
	VariableTypeProp        = "variableType"
	WarningProp             = "warning"
	LeftExpressionSlot      = "leftExpression"
	RightExpressionSlot     = "rightExpression"
	OperatorProp            = "operator"
	CriteriaSlot            = "criteria"
	NegatedProp             = "negated"
	ValueProp               = "value"
	TypeProp                = "type"
	NameProp                = "name"
	GroupSymbolProp         = "groupSymbol"
	ArgsSlot                = "args"
)
