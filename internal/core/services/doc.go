// Package services implements the core business logic, orchestrating the
// driven ports to satisfy the driving port interfaces.
package services
