// Package icon renders the EPEA campaign glyph.
//
// The glyph is a vector template with one named sub-shape per parameter and
// three eye/pupil pairs (ojo-1..3, pupila-1..3), one per ship slot. Each
// render clones the template into an [Icon], whose presentation state is
// carried by the document itself:
//
//   - visibility: CSS custom properties on the root element,
//     --ver-<id>: 1 or 0, consumed by the template's own stylesheet;
//   - eye color: the fill of the ellipse inside each eye group;
//   - highlight: svg-dimmed, svg-family-highlight and svg-highlighted
//     classes on the parameter sub-shape and its paths.
//
// Missing ids never fail: the affected element keeps its template default.
package icon
