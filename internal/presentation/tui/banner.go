package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Atende.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm teal-to-amber scheme.
	s1 := termenv.String("        _                 _      ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("   __ _| |_ ___ _ __   __| | ___ ").Foreground(p.Color("#34d399"))
	s3 := termenv.String("  / _` | __/ _ \\ '_ \\ / _` |/ _ \\").Foreground(p.Color("#a3e635"))
	s4 := termenv.String(" | (_| | ||  __/ | | | (_| |  __/").Foreground(p.Color("#facc15"))
	s5 := termenv.String("  \\__,_|\\__\\___|_| |_|\\__,_|\\___|").Foreground(p.Color("#fb923c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
