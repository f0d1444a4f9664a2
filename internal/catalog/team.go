package catalog

// Member is one team card: who it is and which backdrop it runs.
type Member struct {
	Name        string
	Role        string
	Description string
	Theme       string
	Engine      string
}

var Members = []Member{
	{
		Name:        "Jay Lee",
		Role:        "Co-Founder & Head Developer",
		Description: "Former tech lead with 10+ years experience in product development and scaling startups. Passionate about building transformative technology that solves real-world problems.",
		Theme:       "green",
		Engine:      "rain",
	},
	{
		Name:        "Bianca Arevalo",
		Role:        "Co-Founder & Head Designer",
		Description: "Expert in AI/ML systems with a PhD in Computer Science from Stanford. Focused on creating intuitive solutions through cutting-edge research and development.",
		Theme:       "pink",
		Engine:      "shapes",
	},
}

// MemberFor returns the first member whose card runs engine.
func MemberFor(engine string) (Member, bool) {
	for _, m := range Members {
		if m.Engine == engine {
			return m, true
		}
	}
	return Member{}, false
}
