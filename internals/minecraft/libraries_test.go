package minecraft

import (
	"encoding/json"
	"strings"
	"testing"
)

var (
	linuxAmd64   = Platform{OS: "linux", Arch: "amd64"}
	windowsAmd64 = Platform{OS: "windows", Arch: "amd64"}
	macArm64     = Platform{OS: "darwin", Arch: "arm64"}
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		wantPath string
		wantErr  bool
	}{
		{"com.mojang:brigadier:1.1.8", "com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar", false},
		{"org.lwjgl:lwjgl:3.3.1:natives-linux", "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar", false},
		{"net.fabricmc:fabric-loader:0.14.21", "net/fabricmc/fabric-loader/0.14.21/fabric-loader-0.14.21.jar", false},
		{"broken", "", true},
		{"a::b", "", true},
		{"a:b:c:d:e", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCoordinate(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", c.Path(), tt.wantPath)
			}
			if c.String() != tt.name {
				t.Errorf("String() = %q, want %q", c.String(), tt.name)
			}
		})
	}
}

func TestLibrary_Applies(t *testing.T) {
	linuxOnly := Rules{{Action: "allow", OS: OS{Name: "linux"}}}
	tests := []struct {
		name     string
		lib      Library
		platform Platform
		want     bool
	}{
		{"plain", Library{Name: "a:b:1"}, macArm64, true},
		{"natives on linux", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-linux", Rules: linuxOnly}, linuxAmd64, true},
		{"linux natives on windows", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-linux", Rules: linuxOnly}, windowsAmd64, false},
		{"linux natives without rules on windows", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-linux"}, windowsAmd64, false},
		{"macos arm natives on mac", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-macos-arm64"}, macArm64, true},
		{"macos arm natives on intel mac", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-macos-arm64"}, Platform{OS: "darwin", Arch: "amd64"}, false},
		{"windows x86 natives on x64", Library{Name: "org.lwjgl:lwjgl:3.3.1:natives-windows-x86"}, windowsAmd64, false},
		{"legacy natives present", Library{Name: "a:b:1", Natives: map[string]string{"linux": "natives-linux"}}, linuxAmd64, true},
		{"legacy natives absent", Library{Name: "a:b:1", Natives: map[string]string{"osx": "natives-osx"}}, linuxAmd64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lib.Applies(tt.platform); got != tt.want {
				t.Errorf("Library.Applies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLibrary_DownloadURL(t *testing.T) {
	withArtifactURL := Library{Name: "com.mojang:brigadier:1.1.8"}
	withArtifactURL.Downloads.Artifact = &Artifact{URL: "https://libraries.minecraft.net/com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar"}

	tests := []struct {
		name string
		lib  Library
		want string
	}{
		{
			"default base",
			Library{Name: "com.mojang:brigadier:1.1.8"},
			"https://libraries.minecraft.net/com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar",
		},
		{
			"repository base",
			Library{Name: "net.fabricmc:intermediary:1.20.1", URL: "https://maven.fabricmc.net/"},
			"https://maven.fabricmc.net/net/fabricmc/intermediary/1.20.1/intermediary-1.20.1.jar",
		},
		{
			"full url",
			Library{Name: "x:y:1", URL: "https://example.com/y.jar"},
			"https://example.com/y.jar",
		},
		{
			"artifact url",
			withArtifactURL,
			"https://libraries.minecraft.net/com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lib.DownloadURL(linuxAmd64); got != tt.want {
				t.Errorf("Library.DownloadURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLibrary_legacyNatives(t *testing.T) {
	raw := `{
		"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4-nightly-20150209",
		"natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}"},
		"downloads": {
			"classifiers": {
				"natives-linux": {
					"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/lwjgl-platform-2.9.4-nightly-20150209-natives-linux.jar",
					"url": "https://libraries.minecraft.net/linux.jar"
				},
				"natives-windows-64": {
					"url": "https://libraries.minecraft.net/windows.jar"
				}
			}
		}
	}`
	lib := Library{}
	if err := json.Unmarshal([]byte(raw), &lib); err != nil {
		t.Fatal(err)
	}
	if lib.Shape() != ShapeLegacyNatives {
		t.Fatalf("Shape() = %v", lib.Shape())
	}
	if got := lib.DownloadURL(linuxAmd64); got != "https://libraries.minecraft.net/linux.jar" {
		t.Errorf("linux url = %q", got)
	}
	if got := lib.DownloadURL(windowsAmd64); got != "https://libraries.minecraft.net/windows.jar" {
		t.Errorf("windows url = %q", got)
	}
	wantPath := "org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/lwjgl-platform-2.9.4-nightly-20150209-natives-linux.jar"
	if got := lib.Path(linuxAmd64); got != wantPath {
		t.Errorf("Path() = %q", got)
	}
	if got := lib.DownloadURL(macArm64); got != "" {
		t.Errorf("expected no url for osx, got %q", got)
	}
}

func TestLibrary_legacyNativesWithArtifact(t *testing.T) {
	lib := Library{
		Name:    "org.lwjgl:lwjgl:3.2.2",
		Natives: map[string]string{"linux": "natives-linux", "windows": "natives-windows"},
	}
	lib.Downloads.Artifact = &Artifact{
		Path: "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2.jar",
		URL:  "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2.jar",
	}
	lib.Downloads.Classifiers = map[string]Artifact{
		"natives-linux": {URL: "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-linux.jar"},
	}

	if got := lib.Path(linuxAmd64); got != "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2.jar" {
		t.Errorf("Path() = %q, want the main jar", got)
	}
	if got := lib.DownloadURL(linuxAmd64); got != lib.Downloads.Artifact.URL {
		t.Errorf("DownloadURL() = %q, want the main jar", got)
	}
	if got := lib.NativesURL(linuxAmd64); !strings.HasSuffix(got, "-natives-linux.jar") {
		t.Errorf("NativesURL() = %q", got)
	}
	if got := lib.NativesURL(macArm64); got != "" {
		t.Errorf("NativesURL() for osx = %q, want none", got)
	}
	if !lib.OnClasspath() {
		t.Error("main jar is not on the classpath")
	}
	if !lib.Applies(macArm64) {
		t.Error("main jar does not apply without natives for the platform")
	}

	nativesOnly := Library{Name: "org.lwjgl.lwjgl:lwjgl-platform:2.9.4", Natives: map[string]string{"linux": "natives-linux"}}
	if nativesOnly.OnClasspath() {
		t.Error("natives only jar is on the classpath")
	}
}
