// Package testutil provides helpers shared by package tests.
//
// It must not import any other internal package so every package's tests
// can use it without import cycles.
package testutil
