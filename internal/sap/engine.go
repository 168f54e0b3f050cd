package sap

// DOF indexes the six degrees of freedom. For points these are the global
// Ux..Rz directions, for links the local U1..R3 directions.
type DOF int

const (
	U1 DOF = iota
	U2
	U3
	R1
	R2
	R3
)

// Global aliases used for points
const (
	Ux = U1
	Uy = U2
	Uz = U3
	Rx = R1
	Ry = R2
	Rz = R3
)

var dofNames = [6]string{"U1", "U2", "U3", "R1", "R2", "R3"}

func (d DOF) String() string {
	if d < 0 || d > R3 {
		return "DOF?"
	}
	return dofNames[d]
}

// DOFSet is a membership vector over the six degrees of freedom
type DOFSet [6]bool

// NewDOFSet builds a set from a list of dofs
func NewDOFSet(dofs ...DOF) DOFSet {
	var s DOFSet
	for _, d := range dofs {
		s[d] = true
	}
	return s
}

// List returns the members in ascending order
func (s DOFSet) List() []DOF {
	var out []DOF
	for i, on := range s {
		if on {
			out = append(out, DOF(i))
		}
	}
	return out
}

// AllDOF is the full six-dof set
var AllDOF = DOFSet{true, true, true, true, true, true}

// ObjectKind discriminates model objects in groups and connectivity lists
type ObjectKind int

const (
	ObjPoint  ObjectKind = 1
	ObjFrame  ObjectKind = 2
	ObjCable  ObjectKind = 3
	ObjTendon ObjectKind = 4
	ObjArea   ObjectKind = 5
	ObjSolid  ObjectKind = 6
	ObjLink   ObjectKind = 7
)

// Connection is an object attached to a point, or a group member
type Connection struct {
	Kind ObjectKind
	Name string
}

// ItemType selects how result queries interpret the name argument
type ItemType int

const (
	ObjectElm    ItemType = 0
	Element      ItemType = 1
	GroupElm     ItemType = 2
	SelectionElm ItemType = 3
)

// CardinalPoint is the section reference point the frame axis passes through
type CardinalPoint int

const (
	BottomLeft   CardinalPoint = 1
	BottomCenter CardinalPoint = 2
	BottomRight  CardinalPoint = 3
	MiddleLeft   CardinalPoint = 4
	MiddleCenter CardinalPoint = 5
	MiddleRight  CardinalPoint = 6
	TopLeft      CardinalPoint = 7
	TopCenter    CardinalPoint = 8
	TopRight     CardinalPoint = 9
	Centroid     CardinalPoint = 10
	ShearCenter  CardinalPoint = 11
)

// SectionKind is the engine-side type of a frame section
type SectionKind int

const (
	SectionGeneral      SectionKind = 1
	SectionNonPrismatic SectionKind = 2
	SectionRectangle    SectionKind = 3
)

// GeneralSection holds the properties of a general (user-defined) section
type GeneralSection struct {
	Name     string
	Material string
	Depth    float64
	Width    float64
	Area     float64
	As2      float64
	As3      float64
	J        float64
	I22      float64
	I33      float64
	I23      float64
	Notes    string
}

// LengthType tells how a non-prismatic segment length is interpreted
type LengthType int

const (
	LengthRelative LengthType = 1
	LengthAbsolute LengthType = 2
)

// Variation is the law a bending stiffness follows along a segment
type Variation int

const (
	VarLinear    Variation = 1
	VarParabolic Variation = 2
	VarCubic     Variation = 3
)

// NonPrismaticSegment is one piece of a non-prismatic section
type NonPrismaticSegment struct {
	Start  string
	End    string
	Length float64
	Type   LengthType
	EI33   Variation
	EI22   Variation
}

// Modifiers are the eight section property modifiers:
// area, As2, As3, torsion, I22, I33, mass, weight
type Modifiers [8]float64

// UnitModifiers leaves every property untouched
var UnitModifiers = Modifiers{1, 1, 1, 1, 1, 1, 1, 1}

// LinkPropKind is the engine-side type of a link property
type LinkPropKind int

const (
	LinkLinear       LinkPropKind = 1
	LinkMultiElastic LinkPropKind = 3
	LinkPlasticWen   LinkPropKind = 7
)

// LinkPropData is the linear skeleton every link property shares
type LinkPropData struct {
	Name      string
	DOF       DOFSet
	Fixed     DOFSet
	NonLinear DOFSet
	Ke        [6]float64
	Ce        [6]float64
	DJ2       float64
	DJ3       float64
	KeCoupled bool
	CeCoupled bool
	Notes     string
	GUID      string
}

// WenData are the per-dof plastic-Wen parameters
type WenData struct {
	K     [6]float64
	Yield [6]float64
	Ratio [6]float64
	Exp   [6]float64
}

// CaseLoad is one load entry of an analysis case. Type is "Load" for a load
// pattern or "Accel" for a ground acceleration named U1, U2 or U3.
type CaseLoad struct {
	Type  string
	Name  string
	Func  string
	SF    float64
	Angle float64
}

// ModalCombination is the rule combining modal responses in a spectrum case
type ModalCombination int

const (
	CQC  ModalCombination = 1
	SRSS ModalCombination = 2
	ABS  ModalCombination = 3
	GMC  ModalCombination = 4
)

// SpectrumCase defines a response-spectrum load case
type SpectrumCase struct {
	ModalCase  string
	Loads      []CaseLoad
	ModalCombo ModalCombination
	DirCombo   ModalCombination
	Damping    float64
}

// Rayleigh is proportional damping given by two periods and two ratios
type Rayleigh struct {
	Period1  float64
	Period2  float64
	Damping1 float64
	Damping2 float64
}

// HistoryCase defines a modal or direct-integration time-history case
type HistoryCase struct {
	ModalCase   string
	InitialCase string
	Loads       []CaseLoad
	Steps       int
	Dt          float64
	Damping     float64
	Rayleigh    *Rayleigh
	Integration string
}

// CaseKind is the type of an analysis case
type CaseKind int

const (
	CaseStaticLinear  CaseKind = 1
	CaseModalEigen    CaseKind = 3
	CaseSpectrum      CaseKind = 4
	CaseModalHistory  CaseKind = 6
	CaseDirectHistory CaseKind = 7
)

// ComboKind is the type of a load combination
type ComboKind int

const (
	ComboLinearAdd ComboKind = 0
	ComboEnvelope  ComboKind = 1
	ComboAbsAdd    ComboKind = 2
	ComboSRSS      ComboKind = 3
	ComboRangeAdd  ComboKind = 4
)

// ComboItem is one case or nested combination of a combination
type ComboItem struct {
	Name    string
	IsCombo bool
	SF      float64
}

// ModalRatios are participating mass ratios per mode
type ModalRatios struct {
	Periods []float64
	UX      []float64
	UY      []float64
	UZ      []float64
	SumUX   []float64
	SumUY   []float64
	SumUZ   []float64
	RX      []float64
	RY      []float64
	RZ      []float64
}

// ForceRow is one result row of a link or frame force query
type ForceRow struct {
	Obj      string
	Elm      string
	Point    string
	Case     string
	StepType string
	Step     float64
	P        float64
	V2       float64
	V3       float64
	T        float64
	M2       float64
	M3       float64
}

// DeformRow is one result row of a link deformation query
type DeformRow struct {
	Obj      string
	Elm      string
	Case     string
	StepType string
	U        [6]float64
}

// JointRow is one result row of a joint force or reaction query
type JointRow struct {
	Obj      string
	Elm      string
	Case     string
	StepType string
	F1       float64
	F2       float64
	F3       float64
	M1       float64
	M2       float64
	M3       float64
}

// FileAPI opens, creates and saves model files
type FileAPI interface {
	NewBlank() int
	OpenFile(path string) int
	SaveFile(path string) int
	ModelPath() string
}

// UnitAPI controls the active unit system and the lock flag
type UnitAPI interface {
	SetPresentUnits(u Units) int
	PresentUnits() Units
	SetModelLocked(locked bool) int
	ModelLocked() bool
}

// MaterialAPI adds materials from the engine catalog
type MaterialAPI interface {
	AddMaterial(region, standard, grade, userName string) (string, int)
	DeleteMaterial(name string) int
	MaterialNames() ([]string, int)
}

// SectionAPI defines and queries frame sections
type SectionAPI interface {
	SetGeneral(s GeneralSection) int
	General(name string) (GeneralSection, int)
	SetNonPrismatic(name string, segs []NonPrismaticSegment) int
	NonPrismatic(name string) ([]NonPrismaticSegment, int)
	SetRectangle(name, material string, depth, width float64) int
	SetModifiers(name string, m Modifiers) int
	SectionModifiers(name string) (Modifiers, int)
	SectionType(name string) (SectionKind, int)
	SectionNames() ([]string, int)
}

// PointAPI manages point objects
type PointAPI interface {
	AddPoint(x, y, z float64, name string) (string, int)
	PointCoord(name string) (x, y, z float64, ret int)
	PointNames() ([]string, int)
	SetRestraint(name string, r DOFSet) int
	Restraint(name string) (DOFSet, int)
	SetPointMass(name string, m [6]float64, replace bool) int
	PointMass(name string) ([6]float64, int)
	SetSpringCoupled(name string, k [21]float64, replace bool) int
	SpringCoupled(name string) ([21]float64, int)
	PointConnectivity(name string) ([]Connection, int)
}

// FrameAPI manages frame objects
type FrameAPI interface {
	AddFrame(i, j, section, name string) (string, int)
	FramePoints(name string) (i, j string, ret int)
	FrameNames() ([]string, int)
	FrameSection(name string) (string, int)
	SetFrameSection(name, section string, totalLength, relStart float64) int
	SetInsertionPoint(name string, cp CardinalPoint) int
	InsertionPoint(name string) (CardinalPoint, int)
	SetFrameMass(name string, massPerLength float64, replace bool) int
	FrameMass(name string) (float64, int)
}

// LinkAPI manages two-point link objects
type LinkAPI interface {
	AddLink(i, j, prop, name string) (string, int)
	DeleteLink(name string) int
	LinkNames() ([]string, int)
	LinkPoints(name string) (i, j string, ret int)
	LinkProperty(name string) (string, int)
}

// LinkPropAPI defines and queries link properties
type LinkPropAPI interface {
	SetLinearProp(d LinkPropData) int
	LinearProp(name string) (LinkPropData, int)
	SetMultiElasticProp(d LinkPropData) int
	MultiElasticProp(name string) (LinkPropData, int)
	SetMultiLinearPoints(name string, dof DOF, disp, force []float64, hysteresis string) int
	MultiLinearPoints(name string, dof DOF) (disp, force []float64, ret int)
	SetPlasticWenProp(d LinkPropData, w WenData) int
	PlasticWenProp(name string) (LinkPropData, WenData, int)
	LinkPropType(name string) (LinkPropKind, int)
	LinkPropNames() ([]string, int)
}

// ConstraintAPI defines joint constraints and assigns them to points
type ConstraintAPI interface {
	SetBodyConstraint(name string, dof DOFSet) int
	SetEqualConstraint(name string, dof DOFSet) int
	AssignPointConstraint(point, constraint string, replace bool) int
	PointConstraints(point string) ([]string, int)
}

// GroupAPI manages object groups
type GroupAPI interface {
	SetGroup(name string) int
	AssignToGroup(kind ObjectKind, name, group string) int
	ClearGroup(name string) int
	GroupAssignments(name string) ([]Connection, int)
}

// CaseAPI defines analysis cases
type CaseAPI interface {
	SetStaticLinear(name string, loads []CaseLoad) int
	SetModalEigen(name, initialCase string, maxModes, minModes int) int
	SetResponseSpectrum(name string, c SpectrumCase) int
	SetModalHistory(name string, c HistoryCase) int
	SetDirectHistory(name string, c HistoryCase) int
	CaseType(name string) (CaseKind, int)
	CaseNames() ([]string, int)
}

// FuncAPI defines spectrum and time-history functions
type FuncAPI interface {
	SetSpectrumFunction(name string, periods, values []float64, damping float64) int
	SetHistoryFunction(name string, times, values []float64) int
	FunctionNames() ([]string, int)
}

// ComboAPI defines load combinations
type ComboAPI interface {
	AddCombo(name string, kind ComboKind) int
	SetComboCase(combo string, item ComboItem) int
	ComboCases(combo string) ([]ComboItem, int)
	ComboNames() ([]string, int)
}

// AnalysisAPI sets run flags and runs the analysis
type AnalysisAPI interface {
	SetRunFlag(caseName string, run bool) int
	RunFlag(caseName string) (bool, int)
	RunAnalysis() int
}

// ResultAPI reads analysis results. Queries require a locked model.
type ResultAPI interface {
	DeselectAllForOutput() int
	SelectCaseForOutput(name string) int
	SelectComboForOutput(name string) int
	ModalParticipatingMassRatios() (ModalRatios, int)
	LinkForce(name string, item ItemType) ([]ForceRow, int)
	LinkDeformation(name string, item ItemType) ([]DeformRow, int)
	FrameJointForce(name string, item ItemType) ([]JointRow, int)
	JointReaction(name string, item ItemType) ([]JointRow, int)
}

// Engine is the full verb surface of the FEA engine. Every verb returns a
// status code where 0 means success.
type Engine interface {
	FileAPI
	UnitAPI
	MaterialAPI
	SectionAPI
	PointAPI
	FrameAPI
	LinkAPI
	LinkPropAPI
	ConstraintAPI
	GroupAPI
	CaseAPI
	FuncAPI
	ComboAPI
	AnalysisAPI
	ResultAPI
}
