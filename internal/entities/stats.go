package entities

// Stat names one of the six PTU stats
type Stat string

const (
	StatHP             Stat = "hp"
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpecialAttack  Stat = "special_attack"
	StatSpecialDefense Stat = "special_defense"
	StatSpeed          Stat = "speed"
)

// AllStats lists stats in sheet order
var AllStats = []Stat{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// Stats holds one value per stat
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Get returns the value for s, zero for unknown stats
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpecialAttack
	case StatSpecialDefense:
		return s.SpecialDefense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

// Add returns the per-stat sum
func (s Stats) Add(o Stats) Stats {
	return Stats{
		HP:             s.HP + o.HP,
		Attack:         s.Attack + o.Attack,
		Defense:        s.Defense + o.Defense,
		SpecialAttack:  s.SpecialAttack + o.SpecialAttack,
		SpecialDefense: s.SpecialDefense + o.SpecialDefense,
		Speed:          s.Speed + o.Speed,
	}
}

const (
	MinCombatStage = -6
	MaxCombatStage = 6
)

// Stages are temporary combat stage modifiers. HP has none.
type Stages struct {
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

func (s Stages) Get(stat Stat) int {
	switch stat {
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpecialAttack
	case StatSpecialDefense:
		return s.SpecialDefense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

// InRange reports whether every stage is within -6..+6
func (s Stages) InRange() bool {
	for _, v := range []int{s.Attack, s.Defense, s.SpecialAttack, s.SpecialDefense, s.Speed} {
		if v < MinCombatStage || v > MaxCombatStage {
			return false
		}
	}
	return true
}
