// Package morphology measures the shape of detected cells in a still image,
// classifies them, and aggregates the results into quality, morphology,
// density, concentration and viability figures.
package morphology
