package classfile

import "fmt"

var javaVersions = map[uint16]string{
	45: "1.1", 46: "1.2", 47: "1.3", 48: "1.4",
	49: "5", 50: "6", 51: "7", 52: "8",
	53: "9", 54: "10", 55: "11", 56: "12",
	57: "13", 58: "14", 59: "15", 60: "16",
	61: "17", 62: "18", 63: "19", 64: "20",
	65: "21", 66: "22", 67: "23", 68: "24",
}

// JavaVersion maps a class file major version to the Java release it
// belongs to.
func JavaVersion(major uint16) string {
	if v, ok := javaVersions[major]; ok {
		return v
	}
	return fmt.Sprintf("unknown (%d)", major)
}
