package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled can be set to false to disable emojis (eg. for --no-color)
var EmojiEnabled = true

var emojiSupport = detectEmojiSupport(runtime.GOOS, os.Getenv)

// detectEmojiSupport guesses if the terminal can render emojis. Everything but the
// legacy windows console can. Windows Terminal does not set SESSIONNAME, cmd and powershell do
func detectEmojiSupport(goos string, getenv func(string) string) bool {
	if getenv("TERM") == "linux" {
		// raw linux console
		return false
	}
	return goos != "windows" || getenv("SESSIONNAME") == "" || getenv("WT_SESSION") != ""
}

// Emoji returns e if emojis are supported and enabled, "" otherwise
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
