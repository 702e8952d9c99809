// Package testutil holds deterministic signal generators and numeric
// assertions shared by the package tests.
package testutil
