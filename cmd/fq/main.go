package main

import "fitquest/cmd/fq/root"

func main() {
	root.Execute()
}
