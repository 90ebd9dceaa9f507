package main

import "github.com/frahmantamala/naming-registry/cmd"

func main() {
	cmd.Execute()
}
