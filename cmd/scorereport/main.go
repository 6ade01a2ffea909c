// Command scorereport computes school exam-score reports (per-student
// results, cohort statistics, rankings, gap analysis and skill profiles)
// from a roster file and a report plan.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
