package config

// Default is the battle played when no config file is given: a small arena
// with one robot of each starting variant.
func Default() *Battle {
	rnd := Coord{Random: true}
	b := &Battle{
		Source:      "builtin",
		Battlefield: Dimensions{Width: 10, Height: 10},
		Steps:       30,
		Robots: []RobotDef{
			{Name: "Alpha", X: Fixed(2), Y: Fixed(3)},
			{Name: "Bravo", X: Fixed(5), Y: Fixed(6)},
			{Name: "Kidd", X: rnd, Y: rnd},
			{Name: "Jet", X: rnd, Y: rnd},
			{Name: "Scope", X: rnd, Y: rnd, Variant: "sniper"},
			{Name: "Doc", X: rnd, Y: rnd, Variant: "medic"},
		},
	}
	b.applyDefaults()
	return b
}
