// Package app provides the showcase Bubble Tea application for trek.
//
// It hosts one of each component: a typewriter introduction, a data grid
// over demo people that can switch between a static slice and a live
// stream, and a row of progress rings that start animating once scrolled
// into view. A header carries the translated title and the theme toggle.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View), routes messages to the components by id, and
// persists theme, language and grid preferences.
package app
