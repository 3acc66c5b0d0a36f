// Package mocks provides in-memory implementations of the ports interfaces
// for testing. Each mock exposes optional Fn fields to override behavior per
// test case.
package mocks
