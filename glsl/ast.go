package glsl

// TranslationUnit represents a parsed GLSL shader.
type TranslationUnit struct {
	Version      Version
	InvariantAll bool
	Pragmas      []Pragma
	Extensions   []Extension

	Decls []Decl
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Decl is the interface for external declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// StorageQualifier classifies how a global variable is connected to the
// pipeline.
type StorageQualifier uint8

const (
	StorageNone StorageQualifier = iota
	StorageConst
	StorageIn
	StorageOut
	StorageUniform
	StorageAttribute // ES 1.00
	StorageVarying   // ES 1.00
)

// String returns the qualifier keyword.
func (s StorageQualifier) String() string {
	switch s {
	case StorageConst:
		return "const"
	case StorageIn:
		return "in"
	case StorageOut:
		return "out"
	case StorageUniform:
		return "uniform"
	case StorageAttribute:
		return "attribute"
	case StorageVarying:
		return "varying"
	default:
		return ""
	}
}

// PrecisionQualifier is one of lowp, mediump, highp.
type PrecisionQualifier uint8

const (
	PrecisionNone PrecisionQualifier = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// String returns the qualifier keyword.
func (p PrecisionQualifier) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// InterpolationQualifier is one of smooth, flat.
type InterpolationQualifier uint8

const (
	InterpolationNone InterpolationQualifier = iota
	InterpolationSmooth
	InterpolationFlat
)

// String returns the qualifier keyword.
func (q InterpolationQualifier) String() string {
	switch q {
	case InterpolationSmooth:
		return "smooth"
	case InterpolationFlat:
		return "flat"
	default:
		return ""
	}
}

// LayoutItem is a single name or name=value entry of a layout(...) list.
type LayoutItem struct {
	Name  string
	Value Expr // nil for bare names
	Span  Span
}

// Qualifiers is the full qualifier sequence preceding a type.
type Qualifiers struct {
	Invariant     bool
	InvariantSpan Span
	Centroid      bool
	Interpolation InterpolationQualifier
	Storage       StorageQualifier
	StorageSpan   Span
	Precision     PrecisionQualifier
	Layout        []LayoutItem
}

// TypeSpec is a type with an optional array size.
type TypeSpec struct {
	// Name is the type keyword ("vec4", "float") or struct name.
	Name      string
	Kind      TokenKind // type keyword token kind, TokenIdent for structs
	Array     bool
	ArraySize Expr // nil for unsized arrays
	Span      Span
}

// VariableDecl represents a global or local variable declaration.
// A single declaration statement with multiple declarators produces one
// VariableDecl per declarator, sharing qualifiers and type.
type VariableDecl struct {
	Quals Qualifiers
	Type  TypeSpec
	Name  string
	Init  Expr
	Span  Span
}

func (d *VariableDecl) Pos() Span { return d.Span }
func (d *VariableDecl) declNode() {}
func (d *VariableDecl) stmtNode() {}

// InvariantDecl re-declares previously declared variables as invariant:
//
//	invariant gl_Position;
//	invariant v_color, v_normal;
type InvariantDecl struct {
	Names []string
	Span  Span
}

func (d *InvariantDecl) Pos() Span { return d.Span }
func (d *InvariantDecl) declNode() {}

// PrecisionDecl is a default precision statement:
//
//	precision mediump float;
type PrecisionDecl struct {
	Precision PrecisionQualifier
	Type      TypeSpec
	Span      Span
}

func (d *PrecisionDecl) Pos() Span { return d.Span }
func (d *PrecisionDecl) declNode() {}

// StructDecl represents a struct declaration.
type StructDecl struct {
	Name    string
	Members []*StructMember
	Span    Span
}

func (d *StructDecl) Pos() Span { return d.Span }
func (d *StructDecl) declNode() {}

// StructMember represents a struct member.
type StructMember struct {
	Type      TypeSpec
	Precision PrecisionQualifier
	Name      string
	Span      Span
}

// FunctionDecl represents a function prototype or definition.
type FunctionDecl struct {
	ReturnType      TypeSpec
	ReturnPrecision PrecisionQualifier
	Name            string
	Params          []*Parameter
	Body            *BlockStmt // nil for prototypes
	Span            Span
}

func (d *FunctionDecl) Pos() Span { return d.Span }
func (d *FunctionDecl) declNode() {}

// Parameter represents a function parameter.
type Parameter struct {
	Quals Qualifiers
	Type  TypeSpec
	Name  string // may be empty in prototypes
	Span  Span
}

// Statements

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	Stmts []Stmt
	Span  Span
}

func (s *BlockStmt) Pos() Span { return s.Span }
func (s *BlockStmt) stmtNode() {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (s *ExprStmt) Pos() Span { return s.Span }
func (s *ExprStmt) stmtNode() {}

// DeclStmt wraps local variable declarations.
type DeclStmt struct {
	Decls []*VariableDecl
	Span  Span
}

func (s *DeclStmt) Pos() Span { return s.Span }
func (s *DeclStmt) stmtNode() {}

// IfStmt represents if/else.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	Span Span
}

func (s *IfStmt) Pos() Span { return s.Span }
func (s *IfStmt) stmtNode() {}

// ForStmt represents a for loop.
type ForStmt struct {
	Init Stmt // nil when empty
	Cond Expr // nil when empty
	Post Expr // nil when empty
	Body Stmt
	Span Span
}

func (s *ForStmt) Pos() Span { return s.Span }
func (s *ForStmt) stmtNode() {}

// WhileStmt represents while and do-while loops.
type WhileStmt struct {
	Cond    Expr
	Body    Stmt
	DoWhile bool
	Span    Span
}

func (s *WhileStmt) Pos() Span { return s.Span }
func (s *WhileStmt) stmtNode() {}

// SwitchStmt represents a switch statement.
type SwitchStmt struct {
	Value Expr
	Cases []*SwitchCase
	Span  Span
}

func (s *SwitchStmt) Pos() Span { return s.Span }
func (s *SwitchStmt) stmtNode() {}

// SwitchCase is one case (or default) label with its statements.
type SwitchCase struct {
	Value Expr // nil for default
	Stmts []Stmt
	Span  Span
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Span  Span
}

func (s *ReturnStmt) Pos() Span { return s.Span }
func (s *ReturnStmt) stmtNode() {}

// BranchStmt represents break, continue, or discard.
type BranchStmt struct {
	Kind TokenKind // TokenBreak, TokenContinue, TokenDiscard
	Span Span
}

func (s *BranchStmt) Pos() Span { return s.Span }
func (s *BranchStmt) stmtNode() {}

// Expressions

// Ident is an identifier reference.
type Ident struct {
	Name string
	Span Span
}

func (e *Ident) Pos() Span { return e.Span }
func (e *Ident) exprNode() {}

// IntLiteral is an integer literal.
type IntLiteral struct {
	Value    int64
	Unsigned bool
	Span     Span
}

func (e *IntLiteral) Pos() Span { return e.Span }
func (e *IntLiteral) exprNode() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Value float64
	Span  Span
}

func (e *FloatLiteral) Pos() Span { return e.Span }
func (e *FloatLiteral) exprNode() {}

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
	Span  Span
}

func (e *BoolLiteral) Pos() Span { return e.Span }
func (e *BoolLiteral) exprNode() {}

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	Op   TokenKind
	Expr Expr
	Span Span
}

func (e *UnaryExpr) Pos() Span { return e.Span }
func (e *UnaryExpr) exprNode() {}

// PostfixExpr is x++ or x--.
type PostfixExpr struct {
	Op   TokenKind
	Expr Expr
	Span Span
}

func (e *PostfixExpr) Pos() Span { return e.Span }
func (e *PostfixExpr) exprNode() {}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op    TokenKind
	Left  Expr
	Right Expr
	Span  Span
}

func (e *BinaryExpr) Pos() Span { return e.Span }
func (e *BinaryExpr) exprNode() {}

// AssignExpr is an assignment, possibly compound.
type AssignExpr struct {
	Op     TokenKind // TokenEqual, TokenPlusEqual, ...
	Target Expr
	Value  Expr
	Span   Span
}

func (e *AssignExpr) Pos() Span { return e.Span }
func (e *AssignExpr) exprNode() {}

// TernaryExpr is cond ? a : b.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (e *TernaryExpr) Pos() Span { return e.Span }
func (e *TernaryExpr) exprNode() {}

// CallExpr is a function call or type constructor.
type CallExpr struct {
	Callee string
	Kind   TokenKind // type keyword for constructors, TokenIdent otherwise
	Args   []Expr
	Span   Span
}

func (e *CallExpr) Pos() Span { return e.Span }
func (e *CallExpr) exprNode() {}

// IndexExpr is a[i].
type IndexExpr struct {
	Base  Expr
	Index Expr
	Span  Span
}

func (e *IndexExpr) Pos() Span { return e.Span }
func (e *IndexExpr) exprNode() {}

// MemberExpr is a.b, including vector swizzles.
type MemberExpr struct {
	Base   Expr
	Member string
	Span   Span
}

func (e *MemberExpr) Pos() Span { return e.Span }
func (e *MemberExpr) exprNode() {}

// SequenceExpr is the comma operator.
type SequenceExpr struct {
	Exprs []Expr
	Span  Span
}

func (e *SequenceExpr) Pos() Span { return e.Span }
func (e *SequenceExpr) exprNode() {}
