// Package canvas provides an offscreen 2D drawing context modelled on the
// HTML canvas 2D API.
//
// # Overview
//
// A [Context] owns a stack of drawing states, a current path and a pixel
// surface that is allocated on first use. Callers mutate the top state
// (transform, paint styles, line and text parameters, shadow, operator)
// and issue drawing commands. The context turns them into calls on a
// [Painter], which rasterizes and composites onto the surface.
//
// # Quick Start
//
//	ctx := canvas.NewContext(256, 256)
//	ctx.SetFillStyle("rebeccapurple")
//	ctx.FillRect(16, 16, 128, 64)
//
//	ctx.SetShadowColor("rgba(0, 0, 0, 0.5)")
//	ctx.SetShadowBlur(4)
//	ctx.SetFont("bold 24px sans-serif")
//	ctx.FillText("hello", 32, 160)
//
//	ctx.Surface().SavePNG("out.png")
//
// # Collaborators
//
// Colors, fonts, shaping, surface allocation, image source classification
// and painting are consumed through small interfaces so each can be
// replaced with [ContextOption] values:
//   - [ColorParser]: CSS color strings (default: package csscolor)
//   - text.Resolver and text.Shaper: fonts and glyph runs (default: package text)
//   - [SurfaceAllocator]: backing bitmaps
//   - [UsabilityClassifier]: whether an [ImageSource] can be drawn
//   - [PainterFactory]: rasterization ([SoftwarePainter] by default)
//
// # Coordinate System
//
// The origin is the top-left corner, X grows right and Y grows down.
// Angles are in radians and positive angles turn clockwise on screen.
//
// # Errors
//
// Setters ignore invalid input and keep the previous value. Operations
// that can fail return a *[DOMError] whose Kind names the failure class;
// use errors.Is with [ErrIndexSize], [ErrSecurity] and the other sentinels.
//
// # Logging
//
// The package logs through log/slog and is silent by default. See
// [SetLogger].
package canvas
