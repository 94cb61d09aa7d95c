package ospath

// Calculate a display name for a file by figuring out what basedir it's relative
// to and trimming the basedir prefix off the front
func FileDisplayName(baseDirs []string, f string) string {
	ret := f
	for _, baseDir := range baseDirs {
		short, isChild := Child(baseDir, f)
		if isChild && len(short) < len(ret) {
			ret = short
		}
	}
	return ret
}
