package java

import (
	"math"
	"runtime"
)

// ChoiceKind is what the user picked as java runtime
type ChoiceKind uint8

const (
	// Automatic picks a bundled runtime matching the version
	Automatic ChoiceKind = iota
	// System uses "java" from PATH
	System
	// Bundled uses a specific bundled runtime
	Bundled
	// Custom is a user supplied binary with its own flags
	Custom
)

// Choice is the java runtime setting of a launch
type Choice struct {
	Kind    ChoiceKind
	Runtime Runtime
	// Name, Path and Flags are only used for Custom
	Name  string
	Path  string
	Flags []string
}

// Selection is the resolved java binary
type Selection struct {
	Executable string
	Flags      []string
	// Bundled is set if Executable belongs to a bundled runtime
	Bundled Runtime
}

type automaticRule struct {
	min, max int
	runtime  Runtime
}

// automaticRules map the majorVersion of a descriptor to a bundled runtime.
// 0 means the descriptor does not say
var automaticRules = []automaticRule{
	{0, 0, Java17},
	{18, math.MaxInt32, Java21},
	{9, 17, Java17},
	{math.MinInt32, 8, Java8},
}

// AutomaticRuntime returns the bundled runtime for a required major version
func AutomaticRuntime(requiredMajor int) Runtime {
	for _, rule := range automaticRules {
		if requiredMajor >= rule.min && requiredMajor <= rule.max {
			return rule.runtime
		}
	}
	return Java17
}

// Resolve returns the java binary for choice. requiredMajor is only used for Automatic
func Resolve(choice Choice, requiredMajor int, runtimeRoot string) Selection {
	return ResolveFor(choice, requiredMajor, runtimeRoot, runtime.GOOS)
}

// ResolveFor is Resolve for the given operating system
func ResolveFor(choice Choice, requiredMajor int, runtimeRoot string, goos string) Selection {
	switch choice.Kind {
	case System:
		bin := "java"
		if goos == "windows" {
			bin = "javaw"
		}
		return Selection{Executable: bin, Flags: SystemFlags()}
	case Custom:
		return Selection{Executable: choice.Path, Flags: append([]string(nil), choice.Flags...)}
	case Bundled:
		return bundled(choice.Runtime, runtimeRoot, goos)
	default:
		return bundled(AutomaticRuntime(requiredMajor), runtimeRoot, goos)
	}
}

func bundled(r Runtime, runtimeRoot string, goos string) Selection {
	return Selection{Executable: r.Bin(runtimeRoot, goos), Flags: r.Flags(), Bundled: r}
}
