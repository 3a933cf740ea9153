package syntax

func keywordList(primary, secondary []string) []Keyword {
	list := make([]Keyword, 0, len(primary)+len(secondary))
	for _, w := range primary {
		list = append(list, Keyword{Word: w, Class: Primary})
	}
	for _, w := range secondary {
		list = append(list, Keyword{Word: w, Class: Secondary})
	}
	return list
}

// C returns the built-in profile for C and C++ sources.
func C() *Profile {
	return (&Profile{
		Name:      "c",
		FileMatch: []string{".c", ".h", ".cpp", ".hpp"},
		Keywords: keywordList(
			[]string{
				"switch", "if", "while", "for", "break", "continue", "return", "else",
				"struct", "union", "typedef", "static", "enum", "class", "case",
			},
			[]string{
				"int", "long", "double", "float", "char", "unsigned", "signed",
				"void", "size_t", "ssize_t", "bool",
			},
		),
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		Flags:       HighlightNumbers | HighlightStrings,
	}).Compile()
}

// Go returns the built-in profile for Go sources.
func Go() *Profile {
	return (&Profile{
		Name:      "go",
		FileMatch: []string{".go"},
		Keywords: keywordList(
			[]string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select", "struct",
				"switch", "type", "var",
			},
			[]string{
				"bool", "byte", "error", "float32", "float64", "int", "int8", "int16",
				"int32", "int64", "rune", "string", "uint", "uint8", "uint16", "uint32",
				"uint64", "uintptr", "any", "true", "false", "nil",
			},
		),
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		Flags:       HighlightNumbers | HighlightStrings,
	}).Compile()
}

// Python returns the built-in profile for Python sources.
func Python() *Profile {
	return (&Profile{
		Name:      "python",
		FileMatch: []string{".py"},
		Keywords: keywordList(
			[]string{
				"and", "as", "assert", "break", "class", "continue", "def", "del",
				"elif", "else", "except", "finally", "for", "from", "global", "if",
				"import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
				"raise", "return", "try", "while", "with", "yield",
			},
			[]string{
				"True", "False", "None", "int", "float", "str", "list", "dict",
				"set", "tuple", "bytes", "object",
			},
		),
		LineComment: "#",
		Flags:       HighlightNumbers | HighlightStrings,
	}).Compile()
}

// DefaultRegistry returns a registry holding the built-in profiles.
func DefaultRegistry() *Registry {
	return NewRegistry(C(), Go(), Python())
}
