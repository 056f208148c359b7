package config

// ServerEnabled reports whether server id is distributed to agent under
// this policy. Precedence, highest first: agent disabled; deny
// membership; non-empty allow without id; per-item enabledIn[agent]
// false; otherwise on. Policy constraints outrank per-item defaults.
func (p TargetPolicy) ServerEnabled(agent, id string, enabledIn map[string]bool) bool {
	if p.Enabled != nil && !*p.Enabled {
		return false
	}
	if containsID(p.Deny, id) {
		return false
	}
	if len(p.Allow) > 0 && !containsID(p.Allow, id) {
		return false
	}
	if v, ok := enabledIn[agent]; ok && !v {
		return false
	}
	return true
}

// SkillEnabled mirrors ServerEnabled for skills, with the additional
// skillsEnabled gate sitting just below the whole-agent switch.
func (p TargetPolicy) SkillEnabled(agent, id string, enabledIn map[string]bool) bool {
	if p.Enabled != nil && !*p.Enabled {
		return false
	}
	if p.SkillsEnabled != nil && !*p.SkillsEnabled {
		return false
	}
	if containsID(p.DenySkills, id) {
		return false
	}
	if len(p.AllowSkills) > 0 && !containsID(p.AllowSkills, id) {
		return false
	}
	if v, ok := enabledIn[agent]; ok && !v {
		return false
	}
	return true
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
