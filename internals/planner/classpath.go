package planner

import (
	"github.com/minepkg/minelander/internals/minecraft"
)

// ClasspathExclusions are libraries that never go on the classpath
var ClasspathExclusions = map[string]bool{
	// broken streaming sdk of old versions
	"tv.twitch:twitch-platform:6.5": true,
}

// Classpath returns the classpath entries of desc in the order the libraries are planned,
// followed by the version jar. Natives only jars are extracted and not part of it
func (p *Planner) Classpath(desc *minecraft.VersionDescriptor) []string {
	entries := make([]string, 0, len(desc.Libraries)+1)
	seen := make(map[string]bool, len(desc.Libraries))
	for _, lib := range desc.Libraries.Required(p.Platform) {
		if !lib.OnClasspath() || ClasspathExclusions[lib.Name] {
			continue
		}
		target := p.Layout.LibraryPath(lib.Path(p.Platform))
		if seen[target] {
			continue
		}
		seen[target] = true
		entries = append(entries, target)
	}
	return append(entries, p.Layout.VersionJarPath(desc.ID))
}
