package main

import (
	"fmt"
	"math"
	"strings"
)

const progressBarLength = 50

// printProgress rewrites a single progress line per batch: fraction of the
// epoch done plus the last batch's loss and accuracy. Observational only.
func printProgress(value, endvalue int, loss, acc float64) {
	percent := float64(value+1) / float64(endvalue)
	arrowLen := int(math.Round(percent*progressBarLength)) - 1
	if arrowLen < 0 {
		arrowLen = 0
	}
	bar := strings.Repeat("-", arrowLen) + ">" + strings.Repeat(" ", progressBarLength-arrowLen-1)
	fmt.Printf("\rPercent: [%s] %d/%d \t Loss : %.3f, Acc : %.3f", bar, value+1, endvalue, loss, acc)
}
