package sap

import "fmt"

// Units is the engine's unit system. Values follow the engine's own enumeration.
type Units int

const (
	LbInF   Units = 1
	LbFtF   Units = 2
	KipInF  Units = 3
	KipFtF  Units = 4
	KNmmC   Units = 5
	KNmC    Units = 6
	KgfmmC  Units = 7
	KgfmC   Units = 8
	NmmC    Units = 9
	NmC     Units = 10
	TonfmmC Units = 11
	TonfmC  Units = 12
	KNcmC   Units = 13
	KgfcmC  Units = 14
	NcmC    Units = 15
	TonfcmC Units = 16
)

// DefaultUnits is the unit system every component restores after emission
const DefaultUnits = KNmC

type unitInfo struct {
	name   string
	length float64 // metres per unit
	force  float64 // kN per unit
}

var unitTable = map[Units]unitInfo{
	LbInF:   {"lb_in_F", 0.0254, 0.0044482216},
	LbFtF:   {"lb_ft_F", 0.3048, 0.0044482216},
	KipInF:  {"Kip_in_F", 0.0254, 4.4482216},
	KipFtF:  {"Kip_ft_F", 0.3048, 4.4482216},
	KNmmC:   {"KN_mm_C", 0.001, 1},
	KNmC:    {"KN_m_C", 1, 1},
	KgfmmC:  {"Kgf_mm_C", 0.001, 0.00980665},
	KgfmC:   {"Kgf_m_C", 1, 0.00980665},
	NmmC:    {"N_mm_C", 0.001, 0.001},
	NmC:     {"N_m_C", 1, 0.001},
	TonfmmC: {"Tonf_mm_C", 0.001, 9.80665},
	TonfmC:  {"Tonf_m_C", 1, 9.80665},
	KNcmC:   {"KN_cm_C", 0.01, 1},
	KgfcmC:  {"Kgf_cm_C", 0.01, 0.00980665},
	NcmC:    {"N_cm_C", 0.01, 0.001},
	TonfcmC: {"Tonf_cm_C", 0.01, 9.80665},
}

func (u Units) String() string {
	if info, ok := unitTable[u]; ok {
		return info.name
	}
	return fmt.Sprintf("Units(%d)", int(u))
}

// Valid reports whether u is one of the sixteen engine unit systems
func (u Units) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// Length returns the size of one length unit in metres
func (u Units) Length() float64 { return unitTable[u].length }

// Force returns the size of one force unit in kN
func (u Units) Force() float64 { return unitTable[u].force }

// ParseUnits looks a unit system up by its engine name (e.g. "KN_m_C")
func ParseUnits(name string) (Units, error) {
	for u, info := range unitTable {
		if info.name == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown unit system %q", ErrContract, name)
}
