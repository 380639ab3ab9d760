// Package language holds the fixed catalog of languages an analysis can be
// requested in.
package language

// Option is a single catalog entry.
type Option struct {
	Code string `yaml:"code" json:"code"` // Short code sent to the analysis service (e.g., "en")
	Name string `yaml:"name" json:"name"` // Display name (e.g., "English")
}

var catalog = []Option{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "hi", Name: "Hindi"},
	{Code: "zh", Name: "Chinese"},
}

// All returns a copy of the catalog in display order.
func All() []Option {
	out := make([]Option, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the initially selected language (the first catalog entry).
func Default() Option {
	return catalog[0]
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (Option, bool) {
	if i := Index(code); i >= 0 {
		return catalog[i], true
	}
	return Option{}, false
}

// Index returns the catalog position of code, or -1.
func Index(code string) int {
	for i, o := range catalog {
		if o.Code == code {
			return i
		}
	}
	return -1
}

// Next returns the code after code, wrapping around. Unknown codes yield the default.
func Next(code string) string {
	i := Index(code)
	if i < 0 {
		return Default().Code
	}
	return catalog[(i+1)%len(catalog)].Code
}

// Prev returns the code before code, wrapping around. Unknown codes yield the default.
func Prev(code string) string {
	i := Index(code)
	if i < 0 {
		return Default().Code
	}
	i--
	if i < 0 {
		i = len(catalog) - 1
	}
	return catalog[i].Code
}
