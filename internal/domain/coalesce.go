package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntOrDefault returns v when positive, otherwise the fallback.
func IntOrDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// TechniqueOrDefault returns s as a StudyTechnique when it is a known
// technique string, otherwise the fallback.
func TechniqueOrDefault(s string, fallback StudyTechnique) StudyTechnique {
	if ValidTechniques[s] {
		return StudyTechnique(s)
	}
	return fallback
}
