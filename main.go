package main

import "github.com/frahmantamala/pto-portal/cmd"

func main() {
	cmd.Execute()
}
