package main

import (
	"github.com/depressor/depressor/cmd/depressor"
)

func main() {
	depressor.Execute()
}
