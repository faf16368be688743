package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/tbrpg/internal/placeholders"
	"chosenoffset.com/tbrpg/internal/world/atlas"
)

func main() {
	dir := flag.String("dir", "assets", "directory to write the sprite sheets to")
	flag.Parse()

	fmt.Println("TBRPG Placeholder Graphics Generator")
	fmt.Println("====================================")
	fmt.Println()

	atlases := atlas.NewManager()
	if err := atlases.LoadDefaults(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	written, err := placeholders.GenerateAndSave(*dir, atlases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder graphics are ready to use.")
}
