// Package cache provides a small bounded LRU map shared by the glyph and
// font layers.
package cache
