package sap

import (
	"errors"

	"github.com/alexiusacademia/gobridge/internal/logger"
)

// DefaultDeadCase is the gravity case used for bearing calibration
const DefaultDeadCase = "DEAD"

// Model is the handle every component talks to the engine through. It turns
// status codes into errors and owns the unit system and lock flag.
type Model struct {
	eng Engine
	Log *logger.Logger

	// DeadCase is the static case run before reading dead-load results
	DeadCase string

	// DefaultPath is where an unnamed model is saved before analysis
	DefaultPath string
}

// NewModel wraps an engine. A nil logger discards messages.
func NewModel(eng Engine, log *logger.Logger) *Model {
	if log == nil {
		log = logger.Discard()
	}
	return &Model{
		eng:         eng,
		Log:         log,
		DeadCase:    DefaultDeadCase,
		DefaultPath: "bridge.sdb",
	}
}

// Engine returns the wrapped engine
func (m *Model) Engine() Engine { return m.eng }

// Check converts a status code into a *CallError (nil on success)
func (m *Model) Check(verb string, ret int) error {
	if ret == 0 {
		return nil
	}
	return &CallError{Verb: verb, Code: ret}
}

// Report logs a non-nil error as a warning and returns it unchanged
func (m *Model) Report(log *logger.Logger, err error) error {
	if err == nil {
		return nil
	}
	if log == nil {
		log = m.Log
	}
	if errors.Is(err, ErrDataMissing) {
		log.Errorf("%v", err)
	} else {
		log.Warnf("%v", err)
	}
	return err
}

// WithUnits switches the engine to u, runs fn, then restores the default
// unit system even when fn fails.
func (m *Model) WithUnits(u Units, fn func() error) error {
	if err := m.Check("SetPresentUnits", m.eng.SetPresentUnits(u)); err != nil {
		return err
	}
	ferr := fn()
	rerr := m.Check("SetPresentUnits", m.eng.SetPresentUnits(DefaultUnits))
	if ferr != nil {
		return ferr
	}
	return rerr
}

// IsLocked reports whether the engine holds analysis results
func (m *Model) IsLocked() bool { return m.eng.ModelLocked() }

// Unlock discards results so the model can be edited again
func (m *Model) Unlock() error {
	if !m.eng.ModelLocked() {
		return nil
	}
	return m.Check("SetModelIsLocked", m.eng.SetModelLocked(false))
}

// Save writes the model to its current path, or DefaultPath if unnamed
func (m *Model) Save() error {
	path := m.eng.ModelPath()
	if path == "" {
		path = m.DefaultPath
	}
	return m.Check("File.Save", m.eng.SaveFile(path))
}

// EnsureAnalyzed runs the dead-load case if the model carries no results.
// Every other case is excluded from the run.
func (m *Model) EnsureAnalyzed() error {
	if m.eng.ModelLocked() {
		return nil
	}
	m.Log.Infof("model unlocked, running %s before reading results", m.DeadCase)
	cases, ret := m.eng.CaseNames()
	if err := m.Check("LoadCases.GetNameList", ret); err != nil {
		return err
	}
	for _, c := range cases {
		if err := m.Check("Analyze.SetRunCaseFlag", m.eng.SetRunFlag(c, c == m.DeadCase)); err != nil {
			return err
		}
	}
	if err := m.Save(); err != nil {
		return err
	}
	return m.Check("Analyze.RunAnalysis", m.eng.RunAnalysis())
}

// SelectOnly deselects every case and combination, then selects one case
func (m *Model) SelectOnly(caseName string) error {
	if err := m.Check("Results.Setup.DeselectAllCasesAndCombosForOutput", m.eng.DeselectAllForOutput()); err != nil {
		return err
	}
	return m.Check("Results.Setup.SetCaseSelectedForOutput", m.eng.SelectCaseForOutput(caseName))
}

// SelectOnlyCombo deselects everything, then selects one combination
func (m *Model) SelectOnlyCombo(combo string) error {
	if err := m.Check("Results.Setup.DeselectAllCasesAndCombosForOutput", m.eng.DeselectAllForOutput()); err != nil {
		return err
	}
	return m.Check("Results.Setup.SetComboSelectedForOutput", m.eng.SelectComboForOutput(combo))
}

// Group creates group name if needed and assigns the listed objects to it
func (m *Model) Group(name string, kind ObjectKind, objects ...string) error {
	if err := m.Check("GroupDef.SetGroup", m.eng.SetGroup(name)); err != nil {
		return err
	}
	for _, obj := range objects {
		if err := m.Check("SetGroupAssign", m.eng.AssignToGroup(kind, obj, name)); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether name is in list
func Contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
