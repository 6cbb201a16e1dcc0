// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-06

// Package main is the entry point for the migrateissues CLI.
package main

import (
	"github.com/wodow/google-code-issues-migrator/cmd/migrateissues/commands"
)

func main() {
	commands.Execute()
}
