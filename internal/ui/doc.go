// Package ui provides the styling and small presentational components of
// trek: theme palettes, Button, Select, Header and ThemeToggle.
//
// Components here hold no business state. Select is the only one with
// behaviour of its own (moving the selection and reporting it as a
// SelectionChangedMsg); the rest are pure render functions.
package ui
