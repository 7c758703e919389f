package main

import (
	"os"
	sys "os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()
	go func() {
		os.Exit(3)
	}()
	os.Exit(1)  // want "direct os.Exit call in main function of package main"
	sys.Exit(1) // want "direct os.Exit call in main function of package main"
}
