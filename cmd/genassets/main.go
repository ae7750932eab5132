package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hakatashi/rhythm-medley/internal/assets"
)

func main() {
	dir := flag.String("out", "assets", "Directory to write the textures into.")
	flag.Parse()

	fmt.Println("Rhythm Medley Texture Generator")
	fmt.Println("===============================")
	fmt.Println()

	paths, err := assets.GenerateAndSave(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, p := range []string{paths.Background, paths.NoteLeft, paths.NoteCenter, paths.NoteRight} {
		fmt.Printf("  wrote %s\n", p)
	}
	fmt.Println()
	fmt.Println("Point the assets section of rhythm-medley.json at these files to use them.")
}
