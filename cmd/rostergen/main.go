// Package main is the entry point for rostergen, a synthetic rostering
// dataset generator for exercising rostering-integration pipelines.
package main

func main() {
	Execute()
}
