package main

import "fmt"

// EchoClass is the qualitative brightness class of a tissue's echo response.
type EchoClass int

const (
	EchoAnechoic EchoClass = iota
	EchoHypoechoic
	EchoIsoechoic
	EchoHyperechoic
)

// MediumID identifies an entry in the acoustic medium table. The enumeration
// is closed; an unknown id is a programmer error.
type MediumID int

const (
	MediumSoftTissue MediumID = iota
	MediumSkin
	MediumFat
	MediumMuscle
	MediumLiver
	MediumKidney
	MediumThyroid
	MediumFluid
	MediumBlood
	MediumBone
	mediumCount
)

// AcousticMedium holds the physical constants of one tissue or material.
// Speed of sound is in m/s, impedance in MRayl, attenuation in dB/cm/MHz.
type AcousticMedium struct {
	ID           MediumID
	Name         string
	SpeedOfSound float64
	Impedance    float64
	Attenuation  float64
	Echo         EchoClass
}

// mediumTable is the static registry of acoustic media, indexed by MediumID.
var mediumTable = [mediumCount]AcousticMedium{
	MediumSoftTissue: {MediumSoftTissue, "soft tissue", 1540, 1.63, softTissueAtten, EchoIsoechoic},
	MediumSkin:       {MediumSkin, "skin", 1615, 1.99, 0.80, EchoHyperechoic},
	MediumFat:        {MediumFat, "fat", 1450, 1.38, 0.63, EchoHypoechoic},
	MediumMuscle:     {MediumMuscle, "muscle", 1580, 1.70, 0.74, EchoIsoechoic},
	MediumLiver:      {MediumLiver, "liver", 1549, 1.65, 0.50, EchoIsoechoic},
	MediumKidney:     {MediumKidney, "kidney", 1561, 1.62, 0.70, EchoHypoechoic},
	MediumThyroid:    {MediumThyroid, "thyroid", 1558, 1.64, 0.58, EchoHyperechoic},
	MediumFluid:      {MediumFluid, "fluid", 1480, 1.48, 0.02, EchoAnechoic},
	MediumBlood:      {MediumBlood, "blood", 1575, 1.61, 0.15, EchoAnechoic},
	MediumBone:       {MediumBone, "bone", 3500, 7.80, 6.90, EchoHyperechoic},
}

// lookupMedium returns the acoustic constants for id. The table is a closed
// enumeration; passing an id outside it panics.
func lookupMedium(id MediumID) AcousticMedium {
	if id < 0 || id >= mediumCount {
		panic(fmt.Sprintf("unknown medium id %d", id))
	}
	return mediumTable[id]
}

// baseEchogenicity maps an echogenicity class to its base intensity.
func baseEchogenicity(class EchoClass) float64 {
	switch class {
	case EchoAnechoic:
		return echoLevelAnechoic
	case EchoHypoechoic:
		return echoLevelHypoechoic
	case EchoHyperechoic:
		return echoLevelHyperech
	default:
		return echoLevelIsoechoic
	}
}
