package filter

// DefaultForbiddenTerms are the topics the bot never routes. A standalone
// "ai" token is always rejected on top of these.
func DefaultForbiddenTerms() map[string][]string {
	return map[string][]string{
		"ai": {
			"artificial intelligence", "machine learning", "deep learning",
			"neural network", "llm", "large language model", "prompt engineering",
			"prompt engineer", "ai engineer", "ai developer", "ai integration",
		},
		"data": {
			"data science", "data scientist", "data analysis", "data analytics",
			"data engineer", "data engineering", "data mining", "data warehouse",
			"business intelligence", "power bi", "tableau", "statistics",
			"big data", "data lake", "etl", "data pipeline", "data modeling",
			"data visualization", "predictive analytics", "data processing",
		},
		"game": {
			"game development", "game dev", "game programming", "game designer",
			"unity", "unreal engine", "game engine", "gaming", "game mechanics",
			"game physics", "3d game", "2d game", "mobile game", "video game",
			"multiplayer game", "game server", "game client", "game backend",
		},
		"devops": {
			"devops", "aws", "azure", "gcp", "google cloud", "cloud computing",
			"cloud architect", "cloud infrastructure", "cloud native", "kubernetes",
			"docker", "containerization", "ci/cd", "jenkins", "terraform",
			"infrastructure as code", "iac", "ansible", "puppet", "chef",
			"microservices", "service mesh", "cloud migration", "cloud security",
			"devsecops", "site reliability", "sre", "platform engineer",
			"gitlab", "bitbucket", "circleci", "travis",
		},
	}
}
