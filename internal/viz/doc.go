// Package viz renders photon transport data in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2x4 sub-pixels per cell
//   - [Camera] and [RenderTracks]: orbiting projection of 3D tracks
//   - [Heatmap]: lipgloss half-block slices coloured by a [Colormap]
//   - [LogLogPlot]: asciigraph curves on log10 axes
//   - [Viewer]: bubbletea model for orbiting tracks interactively
//
// # Key Bindings
//
//	←/→ h/l - Azimuth
//	↑/↓ k/j - Elevation
//	+/-     - Zoom
//	v       - Cycle iso, top, front and side views
//	b       - Toggle bounding box
//	Space   - Auto rotate
package viz
