package main

import "github.com/Mohsinsiddi/mintpad/cmd"

func main() {
	cmd.Execute()
}
