// Package analysis inspects recorded flights.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectral view of a series, used
//     to estimate orbital periods
//   - [Series]: pull one column out of a trajectory
//   - [NewPortrait] and [Portrait.ASCII]: 2D plots of two columns against
//     each other
//   - [Crossings]: times a series passes a threshold going up
//
// # Orbital period
//
// A hero caught in orbit shows up as a periodic target distance:
//
//	d, _ := analysis.Series(samples, analysis.ColumnDistance)
//	period := analysis.DominantPeriod(d, 30)
package analysis
