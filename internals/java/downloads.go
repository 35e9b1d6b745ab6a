package java

import (
	"path/filepath"

	"github.com/minepkg/minelander/internals/merrors"
)

type platformRuntime struct {
	runtime Runtime
	goos    string
}

// temurin builds for x64
var downloadURLs = map[platformRuntime]string{
	{Java8, "windows"}:  "https://github.com/adoptium/temurin8-binaries/releases/download/jdk8u412-b08/OpenJDK8U-jre_x64_windows_hotspot_8u412b08.zip",
	{Java8, "linux"}:    "https://github.com/adoptium/temurin8-binaries/releases/download/jdk8u412-b08/OpenJDK8U-jre_x64_linux_hotspot_8u412b08.tar.gz",
	{Java17, "windows"}: "https://github.com/adoptium/temurin17-binaries/releases/download/jdk-17.0.9%2B9.1/OpenJDK17U-jre_x64_windows_hotspot_17.0.9_9.zip",
	{Java17, "linux"}:   "https://github.com/adoptium/temurin17-binaries/releases/download/jdk-17.0.11%2B9/OpenJDK17U-jre_x64_linux_hotspot_17.0.11_9.tar.gz",
	{Java21, "windows"}: "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.3%2B9/OpenJDK21U-jre_x64_windows_hotspot_21.0.3_9.zip",
	{Java21, "linux"}:   "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.3%2B9/OpenJDK21U-jre_x64_linux_hotspot_21.0.3_9.tar.gz",
}

// DownloadURL returns the archive url of r for goos
func DownloadURL(r Runtime, goos string) (string, error) {
	url, ok := downloadURLs[platformRuntime{r, goos}]
	if !ok {
		return "", merrors.UnsupportedPlatform("download "+r.Name(), goos)
	}
	return url, nil
}

// ArchivePath returns where the archive of r is downloaded to before extraction.
// Every runtime has its own archive so they can be installed at the same time
func ArchivePath(r Runtime, runtimeRoot string, goos string) string {
	if goos == "windows" {
		return filepath.Join(runtimeRoot, r.Name()+".zip")
	}
	return filepath.Join(runtimeRoot, r.Name()+".tar.gz")
}
