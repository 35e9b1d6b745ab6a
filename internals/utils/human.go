package utils

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// HumanInteger shortens large counts with an SI prefix ("3.4k", "12M")
func HumanInteger[N constraints.Integer](input N) string {
	if input < 0 {
		return strconv.FormatInt(int64(input), 10)
	}
	if uint64(input) < 1000 {
		return strconv.FormatUint(uint64(input), 10)
	}
	value, prefix := humanize.ComputeSI(float64(uint64(input)))
	return humanize.FtoaWithDigits(value, 1) + prefix
}
