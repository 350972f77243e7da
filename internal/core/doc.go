// Package core provides the shared types of the trio arena: player identity,
// typed score tables, turn actions, input events and the random source.
// It has no external dependencies so game logic stays pure and testable.
package core
