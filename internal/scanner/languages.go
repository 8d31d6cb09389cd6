package scanner

import "strings"

// languagesByExtension maps file extensions to language names. Only source
// languages are listed; data and markup files do not contribute to the
// language breakdown.
var languagesByExtension = map[string]string{
	".go":    "Go",
	".py":    "Python",
	".pyi":   "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".cjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".rs":    "Rust",
	".rb":    "Ruby",
	".java":  "Java",
	".kt":    "Kotlin",
	".swift": "Swift",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".scala": "Scala",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".sh":    "Shell",
	".bash":  "Shell",
	".zig":   "Zig",
	".lua":   "Lua",
}

// languageForFile returns the language for a filename, or empty when the
// extension is not a recognized source language.
func languageForFile(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return languagesByExtension[strings.ToLower(name[idx:])]
}
