// Package prompt collects field descriptors and values interactively. The
// Survey driver talks to a terminal; tests and other front ends supply
// their own Driver.
package prompt
