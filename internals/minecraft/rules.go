package minecraft

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       OS              `json:"os"`
	Features map[string]bool `json:"features"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name"`
	// Version of the os (can be a regex string)
	Version string `json:"version"`
	// Arch of the system
	Arch string `json:"arch"`
}

// matches reports whether the conditions of this rule hold for os/arch.
// os and arch are descriptor names (see [Platform.OSName] and [Platform.ArchName])
func (r Rule) matches(os string, arch string) bool {
	// we never enable any features (demo user, custom resolution …)
	if len(r.Features) != 0 {
		return false
	}
	if r.OS.Name != "" && r.OS.Name != os {
		return false
	}
	if r.OS.Arch != "" && r.OS.Arch != arch {
		return false
	}
	// TODO: check version (regex) against the kernel version, we deny it for now
	if r.OS.Version != "" {
		return false
	}
	return true
}

// Rules is a list of rules. The last matching rule decides
type Rules []Rule

// Allowed returns true if there are no rules or the last matching rule is an "allow" rule
func (rs Rules) Allowed(p Platform) bool {
	if len(rs) == 0 {
		return true
	}
	os, arch := p.OSName(), p.ArchName()
	allowed := false
	for _, rule := range rs {
		if rule.matches(os, arch) {
			allowed = rule.Action == "allow"
		}
	}
	return allowed
}
