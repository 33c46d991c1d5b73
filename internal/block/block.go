// Package block defines the structured representation of one line of
// G-code (a ParserBlock) and the modal-group bitsets and enumerations
// that the parser, transformers, and printer all share.
package block

// CommandWord is a bitset indexed by modal group. A set bit means the
// block carries a command in that group. Bit layout follows NIST
// RS274-NGC v3 table 4, trimmed to the groups this system supports.
type CommandWord uint16

const (
	G0 CommandWord = 1 << iota // non-modal (G4, G10, G28, G30, G53, G92)
	G1                         // motion mode (G0/G1/G2/G3/G38.x/G80)
	G2                         // plane select (G17/G18/G19)
	G3                         // distance mode (G90/G91)
	G4                         // arc IJK distance mode (G91.1)
	G5                         // feed rate mode (G93/G94)
	G6                         // units (G20/G21)
	G7                         // cutter comp (G40)
	G8                         // tool length offset (G43.1/G49)
	G12                        // coordinate system select (G54-G59)
	G13                        // path control (G61)
	M4                         // program flow (M0/M2/M30)
	M7                         // spindle (M3/M4/M5)
	M8                         // coolant (M7/M8/M9)
	M9                         // override control (M56)
)

// ValueWord is a bitset indexed by word letter. A set bit means the block
// assigns that word. X, Y, Z are kept contiguous (bit i, i+1, i+2) so axis
// loops can shift WordX by an axis index, mirroring the original's
// `bit(WORD_X + i)` idiom.
type ValueWord uint16

const (
	WordF ValueWord = 1 << iota
	WordI
	WordJ
	WordK
	WordL
	WordN
	WordP
	WordR
	WordS
	WordT
	WordX
	WordY
	WordZ
)

// Axis returns the value-word bit for XYZ axis index i (0=X, 1=Y, 2=Z).
func Axis(i int) ValueWord { return WordX << uint(i) }

// Motion codes (modal group G1 / MODAL_GROUP_G1).
type Motion int

const (
	MotionRapid              Motion = 0
	MotionLinear             Motion = 1
	MotionCWArc              Motion = 2
	MotionCCWArc              Motion = 3
	MotionCancel             Motion = 80
	MotionProbeToward        Motion = 140 // G38.2
	MotionProbeTowardNoError Motion = 141 // G38.3
	MotionProbeAway          Motion = 142 // G38.4
	MotionProbeAwayNoError   Motion = 143 // G38.5
)

// PlaneSelect codes (modal group G2).
type PlaneSelect int

const (
	PlaneXY PlaneSelect = 0 // G17
	PlaneZX PlaneSelect = 1 // G18
	PlaneYZ PlaneSelect = 2 // G19
)

// Distance codes (modal group G3).
type Distance int

const (
	DistanceAbsolute    Distance = 0 // G90
	DistanceIncremental Distance = 1 // G91
)

// FeedRateMode codes (modal group G5).
type FeedRateMode int

const (
	FeedRatePerMinute FeedRateMode = 0 // G94
	FeedRateInverseTime FeedRateMode = 1 // G93
)

// Units codes (modal group G6).
type Units int

const (
	UnitsMM     Units = 0 // G21
	UnitsInches Units = 1 // G20
)

// ToolLength codes (modal group G8).
type ToolLength int

const (
	ToolLengthCancel  ToolLength = 0 // G49
	ToolLengthDynamic ToolLength = 1 // G43.1
)

// CoordSelect codes (modal group G12): 0..5 = G54..G59.
type CoordSelect int

// ProgramFlow codes (modal group M4).
type ProgramFlow int

const (
	ProgramFlowRunning   ProgramFlow = 0
	ProgramFlowPaused    ProgramFlow = 1 // sentinel, M0
	ProgramFlowEnd       ProgramFlow = 2 // M2
	ProgramFlowEndReset  ProgramFlow = 30 // M30
)

// Spindle codes (modal group M7).
type Spindle int

const (
	SpindleDisable Spindle = 0
	SpindleCW      Spindle = 1 // M3
	SpindleCCW     Spindle = 2 // M4
)

// Coolant is a bitmask (modal group M8).
type Coolant int

const (
	CoolantMist  Coolant = 1 << 0 // M7
	CoolantFlood Coolant = 1 << 1 // M8
)

// Override codes (modal group M9).
type Override int

const (
	OverrideNone           Override = 0
	OverrideParkingMotion  Override = 1 // M56
)

// Modal holds the set of modal field values a block may carry.
type Modal struct {
	Motion      Motion
	PlaneSelect PlaneSelect
	Distance    Distance
	FeedRate    FeedRateMode
	Units       Units
	ToolLength  ToolLength
	CoordSelect CoordSelect
	ProgramFlow ProgramFlow
	Spindle     Spindle
	Coolant     Coolant
	Override    Override
}

// Values holds the numeric word slots a block may carry.
type Values struct {
	F   float64
	L   int
	N   int
	P   float64
	R   float64
	S   float64
	T   int
	XYZ [3]float64
	IJK [3]float64
}

// Non-modal command tags (modal group G0). The .1 variants of G28/G30/G92
// are encoded by adding 10 to the base command number, matching the
// arithmetic mapping the printer inverts. This mirrors the original's
// `non_modal_command += mantissa` scheme so G28.1/G30.1/G92.1 stay
// distinguishable from G28/G30/G92 without a second field.
const (
	NonModalDwell       = 4
	NonModalSetCoord    = 10
	NonModalGoHome1     = 28
	NonModalGoHome1Set  = 38 // G28.1
	NonModalGoHome2     = 30
	NonModalGoHome2Set  = 40 // G30.1
	NonModalAbsOverride = 53
	NonModalSetOffset   = 92
	NonModalSetOffsetSet = 102 // G92.1
)

// ParserBlock is the structured representation of one line of G-code.
type ParserBlock struct {
	CommandWords      CommandWord
	ValueWords        ValueWord
	NonModalCommand   int
	Modal             Modal
	Values            Values
}

// Shadow is a transformer's running copy of modal state: the modal fields
// plus the last-seen values. Each transformer owns one exclusively.
type Shadow struct {
	Modal  Modal
	Values Values
}

// HasCommand reports whether the block carries a command in the given
// modal group.
func (b *ParserBlock) HasCommand(w CommandWord) bool { return b.CommandWords&w != 0 }

// HasValue reports whether the block assigns the given word.
func (b *ParserBlock) HasValue(w ValueWord) bool { return b.ValueWords&w != 0 }

// SetCommand sets the bit for modal group w.
func (b *ParserBlock) SetCommand(w CommandWord) { b.CommandWords |= w }

// ClearCommand clears the bit for modal group w.
func (b *ParserBlock) ClearCommand(w CommandWord) { b.CommandWords &^= w }

// SetValue sets the bit for word w.
func (b *ParserBlock) SetValue(w ValueWord) { b.ValueWords |= w }

// ClearValue clears the bit for word w.
func (b *ParserBlock) ClearValue(w ValueWord) { b.ValueWords &^= w }
