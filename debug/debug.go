package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Encode  bool
	Changes bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("L5X_DEBUG_PARSE")
	d.Encode = boolEnv("L5X_DEBUG_ENCODE")
	d.Changes = boolEnv("L5X_DEBUG_CHANGES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Changes() bool {
	return d.Changes
}
