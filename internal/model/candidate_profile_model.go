package model

// CandidateProfile adalah hasil parsing resume, immutable setelah dibuat.
type CandidateProfile struct {
	Skills     []string `json:"skills"`
	Projects   []string `json:"projects"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
}

func (p *CandidateProfile) HasSkills() bool {
	return len(p.Skills) > 0
}
