// Command validate checks a session snapshot export for integrity: every
// collection decodes, every record satisfies the rules the service enforces
// on write, and cross-collection references resolve.
//
// Usage:
//
//	go run ./cmd/validate -in data/seed/demo.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/disaster-helper/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	in := flag.String("in", "", "snapshot JSON file to validate")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return 2
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read snapshot: %v\n", err)
		return 1
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: decode snapshot: %v\n", err)
		return 1
	}

	fmt.Println("=== Snapshot Integrity Validation ===")
	fmt.Println()

	phases := validateSnapshot(snap)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}
