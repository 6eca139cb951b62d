// Package internal holds values shared by all commands.
package internal

// Version is the hancorpus release version.
const Version = "0.3.0"
