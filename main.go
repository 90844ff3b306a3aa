package main

import (
	pftrack "github.com/dandelion9999/protein-floor-tracker/cmd/pftrack"
)

func main() {
	pftrack.Execute()
}
