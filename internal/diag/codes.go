package diag

// Error code constants, one family per pipeline phase, following the
// phase-prefixed numbering convention of the teacher's error taxonomy
// (PAR###, MOD###, LDR###, TC### in internal/errors/codes.go). Each
// pipeline component (§2 of SPEC_FULL.md) owns one prefix.
const (
	// Desugaring (component E)
	NextInFirstField = "NXT001" // $next used in the first physical field
	NextInSize       = "NXT002" // $next used outside a start expression

	// Symbol resolution (component F)
	DuplicateName       = "RES001"
	NoCandidate         = "RES002"
	AmbiguousReference  = "RES003"
	NotComposite        = "RES004"
	ArrayMemberAccess   = "RES005"
	ReservedName        = "RES006"
	SelfImport          = "RES007"

	// Dependency analysis (component G)
	DependencyCycle = "DEP001"
	ImportCycle     = "DEP002"
	Unplaceable     = "DEP003" // compiler-bug: topological placement failed

	// Type annotation/checking (component H)
	TypeMismatch       = "TYP001"
	WrongArgCount       = "TYP002"
	NotAFieldReference  = "TYP003"
	StaticPhysicalField = "TYP004"
	ArityMismatch       = "TYP005"
	BadParameterType    = "TYP006"

	// Bounds inference (component I)
	BoundsInconsistent = "BND001"

	// Attribute checking (component J)
	UnknownAttribute    = "ATR001"
	DuplicateAttribute  = "ATR002"
	IllegalByteOrder    = "ATR003"
	MissingByteOrder    = "ATR004"
	BadFixedSize        = "ATR005"
	BadExpectedBackEnds = "ATR006"
	BadEnumCase         = "ATR007"
	UnqualifiedBackEnd  = "ATR008"

	// Constraint checking (component K)
	RequiresOnArray     = "CON001"
	RequiresOnComposite = "CON002"
	EnumOutOfRange      = "CON003"
	FieldOutOfRange     = "CON004"

	// Upstream-boundary lexer/parser
	UnexpectedToken = "PAR001"
	UnterminatedTok = "PAR002"

	// File loading (-I import-dir search, cmd/embossc and internal/loader)
	ImportNotFound = "LDR001"
)
