package main

import "github.com/frahmantamala/budget-insights/cmd"

func main() {
	cmd.Execute()
}
