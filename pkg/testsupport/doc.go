// Package testsupport holds helpers shared by package tests: golden files,
// template output capture and stub collaborators for the relay and the
// content store.
package testsupport
