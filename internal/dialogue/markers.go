package dialogue

import "regexp"

var varMarker = regexp.MustCompile(`<var>(.*?)</var>`)

// Render replaces each <var>Name</var> marker in text with vars[Name].
// A name missing from vars renders as the bare name.
func Render(text string, vars map[string]string) string {
	return varMarker.ReplaceAllStringFunc(text, func(m string) string {
		name := varMarker.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return name
	})
}

// Vars lists the marker names in text, in order of appearance.
func Vars(text string) []string {
	var names []string
	for _, m := range varMarker.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}
