package entities

// PokemonType is one of the eighteen elemental types
type PokemonType string

const (
	TypeNormal   PokemonType = "normal"
	TypeFire     PokemonType = "fire"
	TypeWater    PokemonType = "water"
	TypeElectric PokemonType = "electric"
	TypeGrass    PokemonType = "grass"
	TypeIce      PokemonType = "ice"
	TypeFighting PokemonType = "fighting"
	TypePoison   PokemonType = "poison"
	TypeGround   PokemonType = "ground"
	TypeFlying   PokemonType = "flying"
	TypePsychic  PokemonType = "psychic"
	TypeBug      PokemonType = "bug"
	TypeRock     PokemonType = "rock"
	TypeGhost    PokemonType = "ghost"
	TypeDragon   PokemonType = "dragon"
	TypeDark     PokemonType = "dark"
	TypeSteel    PokemonType = "steel"
	TypeFairy    PokemonType = "fairy"
)

// AllTypes lists every type in national dex order
var AllTypes = []PokemonType{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

func (t PokemonType) Valid() bool {
	_, ok := typeChart[t]
	return ok
}

type matchup struct {
	superEffective []PokemonType
	resisted       []PokemonType
	immune         []PokemonType
}

// typeChart is keyed by the attacking type
var typeChart = map[PokemonType]matchup{
	TypeNormal: {
		resisted: []PokemonType{TypeRock, TypeSteel},
		immune:   []PokemonType{TypeGhost},
	},
	TypeFire: {
		superEffective: []PokemonType{TypeGrass, TypeIce, TypeBug, TypeSteel},
		resisted:       []PokemonType{TypeFire, TypeWater, TypeRock, TypeDragon},
	},
	TypeWater: {
		superEffective: []PokemonType{TypeFire, TypeGround, TypeRock},
		resisted:       []PokemonType{TypeWater, TypeGrass, TypeDragon},
	},
	TypeElectric: {
		superEffective: []PokemonType{TypeWater, TypeFlying},
		resisted:       []PokemonType{TypeElectric, TypeGrass, TypeDragon},
		immune:         []PokemonType{TypeGround},
	},
	TypeGrass: {
		superEffective: []PokemonType{TypeWater, TypeGround, TypeRock},
		resisted:       []PokemonType{TypeFire, TypeGrass, TypePoison, TypeFlying, TypeBug, TypeDragon, TypeSteel},
	},
	TypeIce: {
		superEffective: []PokemonType{TypeGrass, TypeGround, TypeFlying, TypeDragon},
		resisted:       []PokemonType{TypeFire, TypeWater, TypeIce, TypeSteel},
	},
	TypeFighting: {
		superEffective: []PokemonType{TypeNormal, TypeIce, TypeRock, TypeDark, TypeSteel},
		resisted:       []PokemonType{TypePoison, TypeFlying, TypePsychic, TypeBug, TypeFairy},
		immune:         []PokemonType{TypeGhost},
	},
	TypePoison: {
		superEffective: []PokemonType{TypeGrass, TypeFairy},
		resisted:       []PokemonType{TypePoison, TypeGround, TypeRock, TypeGhost},
		immune:         []PokemonType{TypeSteel},
	},
	TypeGround: {
		superEffective: []PokemonType{TypeFire, TypeElectric, TypePoison, TypeRock, TypeSteel},
		resisted:       []PokemonType{TypeGrass, TypeBug},
		immune:         []PokemonType{TypeFlying},
	},
	TypeFlying: {
		superEffective: []PokemonType{TypeGrass, TypeFighting, TypeBug},
		resisted:       []PokemonType{TypeElectric, TypeRock, TypeSteel},
	},
	TypePsychic: {
		superEffective: []PokemonType{TypeFighting, TypePoison},
		resisted:       []PokemonType{TypePsychic, TypeSteel},
		immune:         []PokemonType{TypeDark},
	},
	TypeBug: {
		superEffective: []PokemonType{TypeGrass, TypePsychic, TypeDark},
		resisted:       []PokemonType{TypeFire, TypeFighting, TypePoison, TypeFlying, TypeGhost, TypeSteel, TypeFairy},
	},
	TypeRock: {
		superEffective: []PokemonType{TypeFire, TypeIce, TypeFlying, TypeBug},
		resisted:       []PokemonType{TypeFighting, TypeGround, TypeSteel},
	},
	TypeGhost: {
		superEffective: []PokemonType{TypePsychic, TypeGhost},
		resisted:       []PokemonType{TypeDark},
		immune:         []PokemonType{TypeNormal},
	},
	TypeDragon: {
		superEffective: []PokemonType{TypeDragon},
		resisted:       []PokemonType{TypeSteel},
		immune:         []PokemonType{TypeFairy},
	},
	TypeDark: {
		superEffective: []PokemonType{TypePsychic, TypeGhost},
		resisted:       []PokemonType{TypeFighting, TypeDark, TypeFairy},
	},
	TypeSteel: {
		superEffective: []PokemonType{TypeIce, TypeRock, TypeFairy},
		resisted:       []PokemonType{TypeFire, TypeWater, TypeElectric, TypeSteel},
	},
	TypeFairy: {
		superEffective: []PokemonType{TypeFighting, TypeDragon, TypeDark},
		resisted:       []PokemonType{TypeFire, TypePoison, TypeSteel},
	},
}

// PTU damage multipliers by net super-effective steps
var netMultiplier = map[int]float64{
	-3: 0.125,
	-2: 0.25,
	-1: 0.5,
	0:  1,
	1:  1.5,
	2:  2,
	3:  3,
}

// Effectiveness returns the PTU damage multiplier of an attack type against
// a defender's types. Any immunity wins outright.
func Effectiveness(attack PokemonType, defender []PokemonType) float64 {
	m, ok := typeChart[attack]
	if !ok {
		return 1
	}

	net := 0
	for _, d := range defender {
		switch {
		case contains(m.immune, d):
			return 0
		case contains(m.superEffective, d):
			net++
		case contains(m.resisted, d):
			net--
		}
	}
	return netMultiplier[max(-3, min(3, net))]
}

// DefensiveChart maps every attacking type to its multiplier against defender
func DefensiveChart(defender []PokemonType) map[PokemonType]float64 {
	chart := make(map[PokemonType]float64, len(AllTypes))
	for _, t := range AllTypes {
		chart[t] = Effectiveness(t, defender)
	}
	return chart
}

func contains(list []PokemonType, t PokemonType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
