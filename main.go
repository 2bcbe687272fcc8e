// main.go
//
// Entry point for the lexique binary; see cmd/ for the command tree.

package main

import "github.com/robalobadob/lexique/cmd"

func main() {
	cmd.Execute()
}
