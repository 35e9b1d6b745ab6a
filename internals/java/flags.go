package java

import "strings"

var modernFlags = strings.Fields(`-XX:+UnlockExperimentalVMOptions -XX:+UnlockDiagnosticVMOptions
	-XX:+AlwaysActAsServerClassMachine -XX:+AlwaysPreTouch -XX:+DisableExplicitGC -XX:+UseNUMA
	-XX:NmethodSweepActivity=1 -XX:ReservedCodeCacheSize=400M -XX:NonNMethodCodeHeapSize=12M
	-XX:ProfiledCodeHeapSize=194M -XX:NonProfiledCodeHeapSize=194M -XX:-DontCompileHugeMethods
	-XX:MaxNodeLimit=240000 -XX:NodeLimitFudgeFactor=8000 -XX:+UseVectorCmov -XX:+PerfDisableSharedMem
	-XX:+UseFastUnorderedTimeStamps -XX:+UseCriticalJavaThreadPriority -XX:ThreadPriorityPolicy=1
	-XX:AllocatePrefetchStyle=3`)

var java8Flags = strings.Fields(`-XX:+UnlockExperimentalVMOptions -XX:+UnlockDiagnosticVMOptions
	-XX:+AlwaysActAsServerClassMachine -XX:+ParallelRefProcEnabled -XX:+DisableExplicitGC
	-XX:+AlwaysPreTouch -XX:+AggressiveOpts -XX:MaxInlineLevel=15 -XX:MaxVectorSize=32
	-XX:ThreadPriorityPolicy=1 -XX:+UseNUMA -XX:+UseDynamicNumberOfGCThreads -XX:NmethodSweepActivity=1
	-XX:ReservedCodeCacheSize=350M -XX:-DontCompileHugeMethods -XX:MaxNodeLimit=240000
	-XX:NodeLimitFudgeFactor=8000 -Dgraal.CompilerConfiguration=community`)

// Flags returns the tuning flags used with a bundled runtime
func (r Runtime) Flags() []string {
	if r == Java8 {
		return append([]string(nil), java8Flags...)
	}
	return append([]string(nil), modernFlags...)
}

// SystemFlags are used with the java binary found in PATH
func SystemFlags() []string {
	return append([]string(nil), modernFlags...)
}
