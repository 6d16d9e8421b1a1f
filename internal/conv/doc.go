// Package conv provides checked integer conversions for frame headers.
//
// Sizes read from a frame are untrusted: they are converted and multiplied
// through these helpers so that a corrupt header yields ErrOverflow instead
// of a huge allocation or a wrapped-around length.
package conv
