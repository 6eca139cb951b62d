// Package cli provides command-line interface setup and configuration
// for the hancorpus application. It wires the corpus pipeline stages
// into cobra subcommands and manages configuration using viper.
package cli
