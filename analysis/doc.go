// Package analysis computes run level statistics from the tracks and frame
// counts of a video analysis: motility and velocity, trajectory shape
// classification, and the stability and trend of per frame counts.
package analysis
