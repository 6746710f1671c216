// Package main provides the tapecheck CLI for sign-off artifact
// verification.
package main

func main() {
	Execute()
}
