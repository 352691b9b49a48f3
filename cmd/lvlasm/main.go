// SPDX-License-Identifier: MIT

// Command lvlasm builds read graphs and unitigs from pairwise overlaps.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
