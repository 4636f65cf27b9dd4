package world

// Hogwarts returns the canonical mystery: the theft of the Celestial
// Compass. The same data ships in data/world.json for deployments that
// load the world from disk.
func Hogwarts() *World {
	return &World{
		Crime: Crime{
			What:  "The Celestial Compass was stolen from Dumbledore's office",
			When:  "Last night between 10 PM and midnight",
			Where: "Dumbledore's Office",
			Who:   "Draco Malfoy",
			How:   "Used Evelyn's stolen master key",
			Why:   "Family pressure and jealousy of the artifact's power",
		},
		Locations: []Location{
			{
				Key:         "great hall",
				Display:     "The Great Hall",
				Description: "Floating candles illuminate the enchanted ceiling. A cold chill lingers.",
			},
			{
				Key:         "library",
				Display:     "The Library",
				Description: "Thousands of dusty books. Madam Pince watches suspiciously.",
			},
			{
				Key:         "courtyard",
				Display:     "The Courtyard",
				Description: "Cold open space with a stone fountain. Students rush by.",
			},
			{
				Key:         "dumbledore's office",
				Display:     "Dumbledore's Office",
				Description: "Circular room with ancient instruments and a sleeping phoenix.",
			},
		},
		Characters: []Character{
			{
				Key:     "professor dumbledore",
				Display: "Professor Dumbledore",
				Avatar:  "purple",
				Persona: "Wise, calm, enigmatic. Guides with questions.",
				Aliases: []string{"dumbledore", "professor dumbledore", "professor"},
			},
			{
				Key:     "draco",
				Display: "Draco Malfoy",
				Avatar:  "green",
				Persona: "Sly, arrogant, easily panicked. Denies everything.",
				Aliases: []string{"draco", "malfoy", "draco malfoy"},
			},
			{
				Key:     "evelyn",
				Display: "Evelyn",
				Avatar:  "brown",
				Persona: "Studious, quiet Ravenclaw. Observant but nervous.",
				Aliases: []string{"evelyn"},
			},
		},
		Clues: map[string][]Clue{
			"great hall": {
				{
					Key:         "shimmer",
					Description: "Magical trace of the missing artifact",
					Reveals:     "Someone with magical artifact passed through recently",
				},
			},
			"library": {
				{
					Key:         "torn_page",
					Description: "Page torn from book about Celestial Compass",
					Reveals:     "Someone researched the compass before stealing it",
					PointsTo:    []string{"draco"},
				},
				{
					Key:         "dropped_key",
					Description: "Evelyn's master key on the floor near Slytherin section",
					Reveals:     "Evelyn's key was stolen here",
					PointsTo:    []string{"draco"},
				},
			},
			"courtyard": {
				{
					Key:         "wet_footprints",
					Description: "Fresh footprints leading to fountain, matches Draco's shoe size",
					Reveals:     "Someone was at fountain recently",
					PointsTo:    []string{"draco"},
				},
				{
					Key:         "compass",
					Description: "The Celestial Compass, hidden behind fountain stones",
					Reveals:     "CASE SOLVED - This is the stolen artifact",
					PointsTo:    []string{"draco"},
					SolvesCase:  true,
				},
			},
			"dumbledore's office": {
				{
					Key:         "portrait_testimony",
					Description: "Portrait saw a blonde student enter last night",
					Reveals:     "Witness testimony of blonde student",
					PointsTo:    []string{"draco"},
				},
			},
		},
		Knowledge: map[string]Knowledge{
			"professor dumbledore": {
				Archetype:   ArchetypeGuide,
				Knows:       []string{"crime.what", "crime.when", "crime.where"},
				WillReveal:  []string{"portrait_testimony"},
				Personality: "Guides with questions, never directly accuses",
			},
			"draco": {
				Archetype:        ArchetypeCulprit,
				Knows:            []string{KnowsAll},
				WillLieAbout:     []string{"whereabouts", "compass_knowledge"},
				ConfessThreshold: 3,
				Personality:      "Defensive, deflects blame, nervous when pressed",
			},
			"evelyn": {
				Archetype:   ArchetypeWitness,
				Knows:       []string{"key_stolen", "saw_draco_in_library"},
				WillReveal:  []string{"dropped_key", "draco_suspicious"},
				Personality: "Nervous, needs encouragement to speak",
			},
		},
		OpeningLocation: "great hall",
		OpeningMessage: "Welcome, young wizard. A mysterious artifact has gone missing from the castle. " +
			"Your journey begins here in the Great Hall. What would you like to do?",
	}
}
